// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

// Shared trace builders for the package tests.

import (
	"github.com/retrolab/retroevents/lib/trace"
)

// testTrace builds an n-frame trace with the required variables at
// rest values: 2 lives, no powerup, no coins, zero score.
func testTrace(n int) *trace.Trace {
	frames := make([]trace.FrameRecord, n)
	for i := range frames {
		frames[i] = trace.FrameRecord{
			Index: i,
			Variables: map[string]int64{
				trace.VarLives:        2,
				trace.VarPowerupLevel: 0,
				trace.VarCoinCount:    0,
				trace.VarScore:        0,
			},
		}
	}
	return &trace.Trace{
		Run:       "sub-01_ses-001_task-mario_run-01",
		Level:     "w1l1",
		FrameRate: 60,
		Frames:    frames,
	}
}

// press holds a button over the closed frame span [from, to].
func press(t *trace.Trace, button trace.Button, from, to int) {
	for i := from; i <= to && i < len(t.Frames); i++ {
		t.Frames[i].Input = t.Frames[i].Input.With(button)
	}
}

// setFrom assigns a variable from the given frame to the end of the
// trace, the usual shape of a counter or latched flag change.
func setFrom(t *trace.Trace, name string, frame int, value int64) {
	for i := frame; i < len(t.Frames); i++ {
		t.Frames[i].Variables[name] = value
	}
}

// setAt assigns a variable on a single frame only.
func setAt(t *trace.Trace, name string, frame int, value int64) {
	t.Frames[frame].Variables[name] = value
}
