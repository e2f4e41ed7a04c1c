// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/retrolab/retroevents/lib/events"
	"github.com/retrolab/retroevents/lib/trace"
)

// Annotate runs the full pipeline over one trace and returns its
// finalized event table: the run metadata event, button press
// intervals for every channel, the classifier's combat/damage/
// collection events, and scene intervals when a scene list is
// supplied (nil skips the stage).
//
// The trace must carry its own frame rate; callers loading sidecars
// without one apply Config.FrameRate before invoking. The returned
// table is sorted by onset with the category tie-break and has passed
// the assembler's range and duplicate validation.
func Annotate(t *trace.Trace, scenes SceneList, cfg Config) (*events.Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	last := t.LastFrame()
	all := []events.Event{{
		Onset:      0,
		Duration:   spanSeconds(t.FrameRate, 0, last),
		TrialType:  events.TrialGame,
		Level:      t.Level,
		FrameStart: 0,
		FrameStop:  last,
	}}

	for _, button := range trace.Buttons {
		trial := events.ButtonTrial(button)
		for interval := range ButtonIntervals(t, button) {
			all = append(all, events.Event{
				Onset:      onsetAt(t.FrameRate, interval.Start),
				Duration:   spanSeconds(t.FrameRate, interval.Start, interval.Stop),
				TrialType:  trial,
				Level:      t.Level,
				FrameStart: interval.Start,
				FrameStop:  interval.Stop,
			})
		}
	}

	classified, err := Classify(t, cfg)
	if err != nil {
		return nil, err
	}
	all = append(all, classified...)

	if scenes != nil {
		merged, err := sceneEvents(t, scenes)
		if err != nil {
			return nil, err
		}
		all = append(all, merged...)
	}

	sorted, err := finalize(t, all)
	if err != nil {
		return nil, err
	}
	return &events.Table{Run: t.Run, Events: sorted}, nil
}

// finalize orders the merged stream and applies the assembler's
// validation. The sort is stable, so events equal under the
// (onset, category) key keep their emission order: button channels in
// canonical order, classifier rules in priority order.
func finalize(t *trace.Trace, all []events.Event) ([]events.Event, error) {
	categories := make(map[events.TrialType]events.Category, len(all))
	for _, event := range all {
		category, ok := events.CategoryOf(event.TrialType)
		if !ok {
			return nil, &ValidationError{Run: t.Run, Event: event,
				Reason: "trial type outside the taxonomy"}
		}
		categories[event.TrialType] = category
	}

	slices.SortStableFunc(all, func(a, b events.Event) int {
		if c := cmp.Compare(a.Onset, b.Onset); c != 0 {
			return c
		}
		return cmp.Compare(categories[a.TrialType], categories[b.TrialType])
	})

	last := t.LastFrame()
	seen := make(map[events.TrialType]map[int]bool)
	for _, event := range all {
		switch {
		case event.FrameStart < 0 || event.FrameStop > last:
			return nil, &ValidationError{Run: t.Run, Event: event,
				Reason: fmt.Sprintf("frame span [%d, %d] outside trace range [0, %d]",
					event.FrameStart, event.FrameStop, last)}
		case event.FrameStop < event.FrameStart:
			return nil, &ValidationError{Run: t.Run, Event: event, Reason: "inverted frame span"}
		case event.Onset < 0 || event.Duration < 0:
			return nil, &ValidationError{Run: t.Run, Event: event, Reason: "negative onset or duration"}
		}

		if events.MultiplyEmittable(event.TrialType) {
			continue
		}
		starts := seen[event.TrialType]
		if starts == nil {
			starts = make(map[int]bool)
			seen[event.TrialType] = starts
		}
		if starts[event.FrameStart] {
			return nil, &ValidationError{Run: t.Run, Event: event,
				Reason: "duplicate event for trial type at this frame"}
		}
		starts[event.FrameStart] = true
	}
	return all, nil
}
