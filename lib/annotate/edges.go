// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"iter"

	"github.com/retrolab/retroevents/lib/trace"
)

// Interval is a closed frame span during which a channel was
// continuously active.
type Interval struct {
	Start int
	Stop  int
}

// ButtonIntervals returns the press intervals of one controller
// channel as a lazy, restartable sequence. Each interval opens on the
// inactive-to-active transition and closes on the last active frame.
// An interval still open when the trace ends is truncated to the
// final frame rather than dropped, so a button held through the end
// of the recording is still counted.
//
// No debouncing is applied: a single-frame activation yields a
// single-frame interval. Callers wanting noise suppression must
// pre-filter the trace.
//
// The scan holds no state outside the iteration, so per-channel calls
// are independent and safe to run in parallel over one shared trace.
func ButtonIntervals(t *trace.Trace, button trace.Button) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		open := false
		start := 0
		for _, frame := range t.Frames {
			active := frame.Input.Has(button)
			switch {
			case active && !open:
				open = true
				start = frame.Index
			case !active && open:
				open = false
				if !yield(Interval{Start: start, Stop: frame.Index - 1}) {
					return
				}
			}
		}
		if open {
			yield(Interval{Start: start, Stop: t.LastFrame()})
		}
	}
}
