// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"
	"sort"
	"strconv"
)

// Variable names fixed by the replay instrumentation.
const (
	// VarLives is the remaining-lives counter.
	VarLives = "lives"

	// VarPowerupLevel is the player's powerup tier (0 small, 1 big,
	// 2 fiery).
	VarPowerupLevel = "powerup_level"

	// VarCoinCount is the cumulative coin counter.
	VarCoinCount = "coin_count"

	// VarScore is the cumulative score.
	VarScore = "score"

	// VarPowerupOnScreen is nonzero while a powerup sprite is on
	// screen. The sixth enemy kill slot aliases with the powerup
	// sprite, so the classifier consults this to suppress phantom
	// kills.
	VarPowerupOnScreen = "powerup_yes_no"

	// BrickPrefix marks the per-brick state flags. A variable named
	// with this prefix transitioning 0 to 1 records that brick being
	// smashed.
	BrickPrefix = "brick"
)

// KillSlots is the number of enemy kill slots instrumented per frame.
const KillSlots = 6

// KillSlotVar returns the variable name of one enemy kill slot. The
// slot holds 0 while the enemy is alive and the kill-method code on
// the frame it is defeated.
func KillSlotVar(slot int) string {
	return "enemy_kill3" + strconv.Itoa(slot)
}

// RequiredVariables must be present on every frame of a valid trace.
var RequiredVariables = []string{VarLives, VarPowerupLevel, VarCoinCount, VarScore}

// FrameRecord is one captured emulator frame: its index, the held
// controller buttons, and the instrumented game-state variables.
type FrameRecord struct {
	Index     int
	Input     ButtonSet
	Variables map[string]int64
}

// Var returns the named variable's value and whether it is present.
func (r FrameRecord) Var(name string) (int64, bool) {
	v, ok := r.Variables[name]
	return v, ok
}

// Trace is the full ordered frame sequence for one run. The core
// treats it as read-only.
type Trace struct {
	// Run identifies the run for error reporting and output naming,
	// typically the BIDS stem of the source sidecar.
	Run string

	// Level is the world/level context identifier for the run.
	Level string

	// FrameRate is the capture rate in frames per second.
	FrameRate float64

	Frames []FrameRecord
}

// Len returns the number of frames.
func (t *Trace) Len() int { return len(t.Frames) }

// LastFrame returns the final frame index, or -1 for an empty trace.
func (t *Trace) LastFrame() int { return len(t.Frames) - 1 }

// MalformedTraceError reports a trace that violates the input
// contract: non-contiguous frame indices, missing required variables,
// or inconsistent construction input. It is fatal for the run and no
// output is produced.
type MalformedTraceError struct {
	Run    string
	Frame  int
	Reason string
}

func (e *MalformedTraceError) Error() string {
	if e.Frame >= 0 {
		return fmt.Sprintf("malformed trace %s: frame %d: %s", e.Run, e.Frame, e.Reason)
	}
	return fmt.Sprintf("malformed trace %s: %s", e.Run, e.Reason)
}

// Validate checks the Trace invariants: at least one frame, a positive
// frame rate, frame indices contiguous from 0, and every required
// variable present on every frame.
func (t *Trace) Validate() error {
	if len(t.Frames) == 0 {
		return &MalformedTraceError{Run: t.Run, Frame: -1, Reason: "empty trace"}
	}
	if t.FrameRate <= 0 {
		return &MalformedTraceError{Run: t.Run, Frame: -1,
			Reason: fmt.Sprintf("frame rate must be positive, got %v", t.FrameRate)}
	}
	for i, frame := range t.Frames {
		if frame.Index != i {
			return &MalformedTraceError{Run: t.Run, Frame: i,
				Reason: fmt.Sprintf("non-contiguous frame index %d", frame.Index)}
		}
		for _, name := range RequiredVariables {
			if _, ok := frame.Variables[name]; !ok {
				return &MalformedTraceError{Run: t.Run, Frame: i,
					Reason: fmt.Sprintf("missing required variable %q", name)}
			}
		}
	}
	return nil
}

// BrickVariables returns the brick flag variable names present in the
// trace, in sorted order so scans over them are deterministic. Names
// are taken from the first frame; Validate guarantees a uniform
// variable set is the provider's contract, and a flag absent from
// frame 0 would have no defined previous value anyway.
func (t *Trace) BrickVariables() []string {
	if len(t.Frames) == 0 {
		return nil
	}
	var names []string
	for name := range t.Frames[0].Variables {
		if len(name) >= len(BrickPrefix) && name[:len(BrickPrefix)] == BrickPrefix {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
