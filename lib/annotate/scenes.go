// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"fmt"

	"github.com/retrolab/retroevents/lib/events"
	"github.com/retrolab/retroevents/lib/trace"
)

// SceneEntry is one externally computed scene boundary: a closed
// frame span with the scene identifier and its traversal code.
type SceneEntry struct {
	// Scene is the scene identifier embedded in the trial type.
	Scene string

	// Code is the traversal code assigned by the scene tool.
	Code string

	// Level overrides the run's level context for this entry when
	// non-empty.
	Level string

	FrameStart int
	FrameStop  int
}

// SceneList is the ordered scene boundary list for one run. A nil
// list means the scene provider was not run; the merge stage is then
// skipped entirely and that is not an error.
type SceneList []SceneEntry

// sceneEvents folds the scene list into interval events. The list
// must be sorted by frame start, non-overlapping, and inside the
// trace's frame range; any violation is a SceneListError and the list
// is never repaired.
func sceneEvents(t *trace.Trace, list SceneList) ([]events.Event, error) {
	out := make([]events.Event, 0, len(list))
	last := t.LastFrame()
	previousStop := -1

	for i, entry := range list {
		if entry.FrameStop < entry.FrameStart {
			return nil, &SceneListError{Run: t.Run, Index: i,
				Reason: fmt.Sprintf("frame span [%d, %d] is inverted", entry.FrameStart, entry.FrameStop)}
		}
		if entry.FrameStart < 0 || entry.FrameStop > last {
			return nil, &SceneListError{Run: t.Run, Index: i,
				Reason: fmt.Sprintf("frame span [%d, %d] outside trace range [0, %d]",
					entry.FrameStart, entry.FrameStop, last)}
		}
		if entry.FrameStart <= previousStop {
			return nil, &SceneListError{Run: t.Run, Index: i,
				Reason: fmt.Sprintf("entry starting at frame %d is unsorted or overlaps its predecessor ending at %d",
					entry.FrameStart, previousStop)}
		}
		previousStop = entry.FrameStop

		level := entry.Level
		if level == "" {
			level = t.Level
		}
		out = append(out, events.Event{
			Onset:      onsetAt(t.FrameRate, entry.FrameStart),
			Duration:   spanSeconds(t.FrameRate, entry.FrameStart, entry.FrameStop),
			TrialType:  events.SceneTrial(entry.Scene, entry.Code),
			Level:      level,
			FrameStart: entry.FrameStart,
			FrameStop:  entry.FrameStop,
		})
	}
	return out, nil
}
