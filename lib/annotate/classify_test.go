// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"errors"
	"testing"

	"github.com/retrolab/retroevents/lib/events"
	"github.com/retrolab/retroevents/lib/trace"
)

func classified(t *testing.T, tr *trace.Trace) []events.Event {
	t.Helper()
	out, err := Classify(tr, DefaultConfig())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	return out
}

func filterTrial(evts []events.Event, trial events.TrialType) []events.Event {
	var out []events.Event
	for _, e := range evts {
		if e.TrialType == trial {
			out = append(out, e)
		}
	}
	return out
}

func TestClassifyLifeLostNotPowerupLost(t *testing.T) {
	tr := testTrace(600)
	// Death at frame 500: lives 3 -> 2, powerup level unchanged.
	setFrom(tr, trace.VarLives, 0, 3)
	setFrom(tr, trace.VarLives, 500, 2)

	out := classified(t, tr)
	lifeLost := filterTrial(out, events.TrialHitLifeLost)
	if len(lifeLost) != 1 {
		t.Fatalf("got %d Hit/life_lost events, want 1", len(lifeLost))
	}
	if lifeLost[0].FrameStart != 500 || lifeLost[0].FrameStop != 500 {
		t.Errorf("life lost at [%d, %d], want [500, 500]", lifeLost[0].FrameStart, lifeLost[0].FrameStop)
	}
	if got := filterTrial(out, events.TrialHitPowerupLost); len(got) != 0 {
		t.Errorf("got %d Hit/powerup_lost events, want 0", len(got))
	}
}

func TestClassifyDeathWithPowerupResetIsOnlyLifeLost(t *testing.T) {
	tr := testTrace(100)
	// Dying while powered up drops both counters on the same frame.
	setFrom(tr, trace.VarPowerupLevel, 0, 1)
	setFrom(tr, trace.VarPowerupLevel, 50, 0)
	setFrom(tr, trace.VarLives, 50, 1)

	out := classified(t, tr)
	if got := filterTrial(out, events.TrialHitLifeLost); len(got) != 1 {
		t.Errorf("got %d Hit/life_lost events, want 1", len(got))
	}
	if got := filterTrial(out, events.TrialHitPowerupLost); len(got) != 0 {
		t.Errorf("death misreported as powerup loss: %v", got)
	}
}

func TestClassifyPowerupLostWithLivesUnchanged(t *testing.T) {
	tr := testTrace(100)
	setFrom(tr, trace.VarPowerupLevel, 10, 2)
	setFrom(tr, trace.VarPowerupLevel, 60, 1)

	out := classified(t, tr)
	powerupLost := filterTrial(out, events.TrialHitPowerupLost)
	if len(powerupLost) != 1 || powerupLost[0].FrameStart != 60 {
		t.Fatalf("Hit/powerup_lost = %v, want one event at frame 60", powerupLost)
	}
	// The tier increase at frame 10 is a collection, not damage.
	collected := filterTrial(out, events.TrialPowerupCollected)
	if len(collected) != 1 || collected[0].FrameStart != 10 {
		t.Fatalf("Powerup_collected = %v, want one event at frame 10", collected)
	}
}

func TestClassifyCoinBurst(t *testing.T) {
	tr := testTrace(300)
	setFrom(tr, trace.VarCoinCount, 200, 3)

	out := classified(t, tr)
	coins := filterTrial(out, events.TrialCoinCollected)
	if len(coins) != 3 {
		t.Fatalf("got %d Coin_collected events, want 3", len(coins))
	}
	for _, coin := range coins {
		if coin.FrameStart != 200 || coin.FrameStop != 200 || coin.Duration != 0 {
			t.Errorf("coin event %+v, want instantaneous at frame 200", coin)
		}
	}
}

func TestClassifySingleCoin(t *testing.T) {
	tr := testTrace(300)
	setFrom(tr, trace.VarCoinCount, 120, 1)

	coins := filterTrial(classified(t, tr), events.TrialCoinCollected)
	if len(coins) != 1 || coins[0].FrameStart != 120 {
		t.Fatalf("Coin_collected = %v, want one event at frame 120", coins)
	}
}

func TestClassifyKillSubTypes(t *testing.T) {
	tr := testTrace(400)
	setAt(tr, trace.KillSlotVar(0), 100, 4)   // stomp
	setAt(tr, trace.KillSlotVar(1), 200, 34)  // impact
	setAt(tr, trace.KillSlotVar(2), 300, 132) // kick
	// Zero-fill the slots elsewhere so the transitions are clean.
	for slot := 0; slot < 3; slot++ {
		name := trace.KillSlotVar(slot)
		for i := range tr.Frames {
			if _, ok := tr.Frames[i].Variables[name]; !ok {
				tr.Frames[i].Variables[name] = 0
			}
		}
	}

	out := classified(t, tr)
	cases := []struct {
		trial events.TrialType
		frame int
	}{
		{events.TrialKillStomp, 100},
		{events.TrialKillImpact, 200},
		{events.TrialKillKick, 300},
	}
	for _, c := range cases {
		got := filterTrial(out, c.trial)
		if len(got) != 1 || got[0].FrameStart != c.frame {
			t.Errorf("%s = %v, want one event at frame %d", c.trial, got, c.frame)
		}
	}
}

func TestClassifyUnknownKillCodeFailsRun(t *testing.T) {
	tr := testTrace(50)
	setFrom(tr, trace.KillSlotVar(0), 0, 0)
	setAt(tr, trace.KillSlotVar(0), 25, 99)

	_, err := Classify(tr, DefaultConfig())
	var unknown *UnknownCodeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCodeError, got %v", err)
	}
	if unknown.Code != 99 || unknown.Frame != 25 || unknown.Slot != 0 {
		t.Errorf("error detail = %+v", unknown)
	}
	if unknown.Run != tr.Run {
		t.Errorf("error carries run %q, want %q", unknown.Run, tr.Run)
	}
}

func TestClassifyLastSlotSuppressedWhilePowerupOnScreen(t *testing.T) {
	tr := testTrace(100)
	lastSlot := trace.KillSlotVar(trace.KillSlots - 1)
	setFrom(tr, lastSlot, 0, 0)
	setAt(tr, lastSlot, 40, 4)
	setFrom(tr, trace.VarPowerupOnScreen, 0, 1)

	out := classified(t, tr)
	if kills := filterTrial(out, events.TrialKillStomp); len(kills) != 0 {
		t.Fatalf("phantom kill reported from aliased slot: %v", kills)
	}

	// Without a powerup on screen the same transition is a real kill.
	setFrom(tr, trace.VarPowerupOnScreen, 0, 0)
	out = classified(t, tr)
	if kills := filterTrial(out, events.TrialKillStomp); len(kills) != 1 {
		t.Fatalf("got %d kills, want 1", len(kills))
	}
}

func TestClassifyBrickSmashed(t *testing.T) {
	tr := testTrace(100)
	setFrom(tr, "brick_07", 0, 0)
	setFrom(tr, "brick_07", 70, 1)
	setFrom(tr, "brick_02", 0, 1) // already broken at trace start, no event

	bricks := filterTrial(classified(t, tr), events.TrialBrickSmashed)
	if len(bricks) != 1 || bricks[0].FrameStart != 70 {
		t.Fatalf("Brick_smashed = %v, want one event at frame 70", bricks)
	}
}

func TestClassifyQuietTraceEmitsNothing(t *testing.T) {
	if out := classified(t, testTrace(500)); len(out) != 0 {
		t.Fatalf("quiet trace produced %d events: %v", len(out), out)
	}
}

func TestClassifyPriorityOrderWithinFrame(t *testing.T) {
	tr := testTrace(300)
	// One frame where a kill, a life loss, and a coin all land
	// together. Emission must follow the rule table, not the order the
	// deltas happen to be discovered.
	setAt(tr, trace.KillSlotVar(0), 150, 4)
	setFrom(tr, trace.VarLives, 150, 1)
	setFrom(tr, trace.VarCoinCount, 150, 1)

	out := classified(t, tr)
	if len(out) != 3 {
		t.Fatalf("got %d events, want 3: %v", len(out), out)
	}
	want := []events.TrialType{
		events.TrialKillStomp,
		events.TrialHitLifeLost,
		events.TrialCoinCollected,
	}
	for i, trial := range want {
		if out[i].TrialType != trial {
			t.Errorf("event %d = %q, want %q", i, out[i].TrialType, trial)
		}
	}
}
