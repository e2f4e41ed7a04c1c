// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package events

// Event is one row of the output table: a typed, timed gameplay event
// located both in seconds (onset, duration) and in frames
// (frame_start, frame_stop, inclusive).
type Event struct {
	// Onset is the event start in seconds from the beginning of the
	// run: FrameStart / frame rate.
	Onset float64

	// Duration is the event length in seconds; 0 for instantaneous
	// events. For interval events it covers the closed frame span:
	// (FrameStop - FrameStart + 1) / frame rate.
	Duration float64

	TrialType TrialType

	// Level is the world/level context the event occurred in.
	Level string

	FrameStart int
	FrameStop  int
}

// Table is the finalized event table for one run: sorted, validated,
// and immutable once handed to the caller.
type Table struct {
	// Run identifies the run the table was produced for.
	Run string

	// Events are the rows in final output order.
	Events []Event
}

// CountByCategory tallies the table's rows per sort category. Labels
// outside the taxonomy never survive assembly, so the lookup cannot
// miss.
func (t *Table) CountByCategory() map[string]int {
	counts := make(map[string]int)
	for _, event := range t.Events {
		category, _ := CategoryOf(event.TrialType)
		counts[category.String()]++
	}
	return counts
}
