// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"fmt"

	"github.com/retrolab/retroevents/lib/events"
)

// UnknownCodeError reports a kill-method code outside the configured
// table. Defaulting the sub-type would silently corrupt the research
// record, so the run fails instead.
type UnknownCodeError struct {
	Run   string
	Frame int
	Slot  int
	Code  int64
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("%s: frame %d: kill slot %d: unknown kill-method code %d",
		e.Run, e.Frame, e.Slot, e.Code)
}

// SceneListError reports a supplied scene boundary list that violates
// its contract: unsorted, overlapping, or outside the trace range.
// The list is never repaired. Index is the offending entry's position
// in the supplied list.
type SceneListError struct {
	Run    string
	Index  int
	Reason string
}

func (e *SceneListError) Error() string {
	return fmt.Sprintf("%s: scene list entry %d: %s", e.Run, e.Index, e.Reason)
}

// ValidationError reports an event that failed the assembler's final
// checks. It signals an internal defect in event generation and
// should never surface in correct operation.
type ValidationError struct {
	Run    string
	Event  events.Event
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: event %q at frame %d: %s",
		e.Run, e.Event.TrialType, e.Event.FrameStart, e.Reason)
}
