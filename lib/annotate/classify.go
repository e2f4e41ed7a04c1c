// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"github.com/retrolab/retroevents/lib/events"
	"github.com/retrolab/retroevents/lib/trace"
)

// classifier carries the scan state shared by the classification
// rules: the trace, the configured kill-code table, the brick
// variable names, and the events emitted so far.
type classifier struct {
	t      *trace.Trace
	cfg    Config
	bricks []string
	out    []events.Event
}

// classifierRules is the priority order applied within one frame when
// several deltas are present simultaneously. The table, not the loop
// body, defines the order; reordering it reorders tied events in the
// output.
var classifierRules = []func(*classifier, trace.FrameRecord, trace.FrameRecord) error{
	(*classifier).kills,
	(*classifier).damage,
	(*classifier).collections,
}

// Classify runs the state transition classifier over the trace and
// returns every combat, damage, and collection event. One linear scan
// compares each frame against its predecessor and applies
// classifierRules in table order, which fixes the emission order of
// simultaneous events before the assembler's stable sort.
//
// All classifier events are instantaneous: duration 0 and
// frame_start = frame_stop = the frame where the value changed.
// Only adjacent-frame deltas are inspected, so a variable change that
// lags its cause in the underlying trace is attributed to the frame
// where the value actually moved.
func Classify(t *trace.Trace, cfg Config) ([]events.Event, error) {
	c := &classifier{t: t, cfg: cfg, bricks: t.BrickVariables()}

	for i := 1; i < len(t.Frames); i++ {
		prev, cur := t.Frames[i-1], t.Frames[i]
		for _, rule := range classifierRules {
			if err := rule(c, prev, cur); err != nil {
				return nil, err
			}
		}
	}
	return c.out, nil
}

// emit appends an instantaneous event at the given frame.
func (c *classifier) emit(trial events.TrialType, frame int) {
	c.out = append(c.out, events.Event{
		Onset:      onsetAt(c.t.FrameRate, frame),
		Duration:   0,
		TrialType:  trial,
		Level:      c.t.Level,
		FrameStart: frame,
		FrameStop:  frame,
	})
}

// kills detects enemy defeats. A kill slot holds 0 while the enemy is
// alive and latches the kill-method code on the frame it dies.
func (c *classifier) kills(prev, cur trace.FrameRecord) error {
	for slot := 0; slot < trace.KillSlots; slot++ {
		name := trace.KillSlotVar(slot)
		before, ok := prev.Var(name)
		if !ok {
			continue
		}
		after, ok := cur.Var(name)
		if !ok || before != 0 || after == 0 {
			continue
		}
		// The last slot aliases with the powerup sprite: while a
		// powerup is on screen its state bleeds into this slot, so a
		// code appearing there is not a kill.
		if slot == trace.KillSlots-1 {
			if onScreen, ok := cur.Var(trace.VarPowerupOnScreen); ok && onScreen != 0 {
				continue
			}
		}
		trial, known := c.cfg.KillCodes[after]
		if !known {
			return &UnknownCodeError{Run: c.t.Run, Frame: cur.Index, Slot: slot, Code: after}
		}
		c.emit(trial, cur.Index)
	}
	return nil
}

// damage detects life and powerup loss. Life loss is checked first so
// that the powerup reset accompanying a death is never reported as a
// separate powerup loss.
func (c *classifier) damage(prev, cur trace.FrameRecord) error {
	livesBefore, _ := prev.Var(trace.VarLives)
	livesAfter, _ := cur.Var(trace.VarLives)
	powerBefore, _ := prev.Var(trace.VarPowerupLevel)
	powerAfter, _ := cur.Var(trace.VarPowerupLevel)
	switch {
	case livesAfter < livesBefore:
		c.emit(events.TrialHitLifeLost, cur.Index)
	case powerAfter < powerBefore && livesAfter == livesBefore:
		c.emit(events.TrialHitPowerupLost, cur.Index)
	}
	return nil
}

// collections detects coins, powerups, and smashed bricks. A coin
// counter jumping by n in one frame yields n events on that frame,
// oldest first.
func (c *classifier) collections(prev, cur trace.FrameRecord) error {
	coinsBefore, _ := prev.Var(trace.VarCoinCount)
	coinsAfter, _ := cur.Var(trace.VarCoinCount)
	for coin := coinsBefore; coin < coinsAfter; coin++ {
		c.emit(events.TrialCoinCollected, cur.Index)
	}

	powerBefore, _ := prev.Var(trace.VarPowerupLevel)
	powerAfter, _ := cur.Var(trace.VarPowerupLevel)
	if powerAfter > powerBefore {
		c.emit(events.TrialPowerupCollected, cur.Index)
	}

	for _, name := range c.bricks {
		before, _ := prev.Var(name)
		after, _ := cur.Var(name)
		if before == 0 && after != 0 {
			c.emit(events.TrialBrickSmashed, cur.Index)
		}
	}
	return nil
}
