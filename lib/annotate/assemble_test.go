// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/retrolab/retroevents/lib/events"
	"github.com/retrolab/retroevents/lib/trace"
)

func TestAnnotateLeadsWithRunMetadata(t *testing.T) {
	tr := testTrace(150)
	table, err := Annotate(tr, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if len(table.Events) == 0 {
		t.Fatal("empty table")
	}
	meta := table.Events[0]
	if meta.TrialType != events.TrialGame {
		t.Fatalf("first event is %q, want %q", meta.TrialType, events.TrialGame)
	}
	if meta.FrameStart != 0 || meta.FrameStop != 149 {
		t.Errorf("metadata span [%d, %d], want [0, 149]", meta.FrameStart, meta.FrameStop)
	}
	if meta.Level != "w1l1" {
		t.Errorf("metadata level %q, want w1l1", meta.Level)
	}
	if meta.Duration != 150.0/60.0 {
		t.Errorf("metadata duration %v, want %v", meta.Duration, 150.0/60.0)
	}
}

func TestAnnotateCategoryTieBreak(t *testing.T) {
	tr := testTrace(100)
	// A button press and a kill on the same frame: the button action
	// must sort first.
	press(tr, trace.ButtonA, 50, 52)
	setFrom(tr, trace.KillSlotVar(0), 0, 0)
	setAt(tr, trace.KillSlotVar(0), 50, 4)

	table, err := Annotate(tr, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	var buttonIdx, killIdx = -1, -1
	for i, event := range table.Events {
		switch event.TrialType {
		case "A":
			buttonIdx = i
		case events.TrialKillStomp:
			killIdx = i
		}
	}
	if buttonIdx == -1 || killIdx == -1 {
		t.Fatalf("missing events: button at %d, kill at %d", buttonIdx, killIdx)
	}
	if table.Events[buttonIdx].Onset != table.Events[killIdx].Onset {
		t.Fatalf("events not simultaneous: %v vs %v",
			table.Events[buttonIdx].Onset, table.Events[killIdx].Onset)
	}
	if buttonIdx > killIdx {
		t.Errorf("kill (index %d) sorted before button press (index %d)", killIdx, buttonIdx)
	}
}

func TestAnnotateSortedByOnset(t *testing.T) {
	tr := testTrace(400)
	press(tr, trace.ButtonRight, 10, 300)
	press(tr, trace.ButtonA, 20, 22)
	setFrom(tr, trace.VarCoinCount, 150, 2)
	setFrom(tr, trace.VarLives, 250, 1)

	table, err := Annotate(tr, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	for i := 1; i < len(table.Events); i++ {
		if table.Events[i].Onset < table.Events[i-1].Onset {
			t.Fatalf("onset order broken at row %d: %v after %v",
				i, table.Events[i].Onset, table.Events[i-1].Onset)
		}
	}
}

func TestAnnotateWithoutScenesHasNoSceneRows(t *testing.T) {
	tr := testTrace(100)
	table, err := Annotate(tr, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("scene-less annotation failed: %v", err)
	}
	for _, event := range table.Events {
		if category, _ := events.CategoryOf(event.TrialType); category == events.CategoryScene {
			t.Fatalf("unexpected scene row %q", event.TrialType)
		}
	}
}

func TestAnnotateSceneMerge(t *testing.T) {
	tr := testTrace(300)
	scenes := SceneList{
		{Scene: "w1l1s1", Code: "3", FrameStart: 0, FrameStop: 99},
		{Scene: "w1l1s2", Code: "7", Level: "w1l2", FrameStart: 100, FrameStop: 299},
	}
	table, err := Annotate(tr, scenes, DefaultConfig())
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	var got []events.Event
	for _, event := range table.Events {
		if category, _ := events.CategoryOf(event.TrialType); category == events.CategoryScene {
			got = append(got, event)
		}
	}
	if len(got) != 2 {
		t.Fatalf("got %d scene rows, want 2", len(got))
	}
	if got[0].TrialType != "scene-w1l1s1_code-3" {
		t.Errorf("scene trial type %q", got[0].TrialType)
	}
	if got[0].Duration != 100.0/60.0 {
		t.Errorf("scene duration %v, want %v", got[0].Duration, 100.0/60.0)
	}
	if got[1].Level != "w1l2" {
		t.Errorf("scene level %q, want the entry override w1l2", got[1].Level)
	}
}

func TestAnnotateSceneListViolations(t *testing.T) {
	tr := testTrace(200)
	cases := []struct {
		name string
		list SceneList
	}{
		{"unsorted", SceneList{
			{Scene: "s2", Code: "1", FrameStart: 100, FrameStop: 150},
			{Scene: "s1", Code: "1", FrameStart: 0, FrameStop: 99},
		}},
		{"overlapping", SceneList{
			{Scene: "s1", Code: "1", FrameStart: 0, FrameStop: 100},
			{Scene: "s2", Code: "1", FrameStart: 100, FrameStop: 150},
		}},
		{"out of range", SceneList{
			{Scene: "s1", Code: "1", FrameStart: 150, FrameStop: 250},
		}},
		{"inverted", SceneList{
			{Scene: "s1", Code: "1", FrameStart: 50, FrameStop: 40},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Annotate(tr, c.list, DefaultConfig())
			var sceneErr *SceneListError
			if !errors.As(err, &sceneErr) {
				t.Fatalf("expected SceneListError, got %v", err)
			}
		})
	}
}

func TestAnnotateMalformedTraceProducesNoOutput(t *testing.T) {
	tr := testTrace(5)
	// Indices 0,1,3,4,5: gap at 2.
	for i := 2; i < len(tr.Frames); i++ {
		tr.Frames[i].Index++
	}
	table, err := Annotate(tr, nil, DefaultConfig())
	var malformed *trace.MalformedTraceError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedTraceError, got %v", err)
	}
	if table != nil {
		t.Fatal("partial output produced for malformed trace")
	}
}

func TestAnnotateIdempotent(t *testing.T) {
	build := func() *trace.Trace {
		tr := testTrace(500)
		press(tr, trace.ButtonRight, 5, 400)
		press(tr, trace.ButtonA, 100, 103)
		setFrom(tr, trace.VarCoinCount, 200, 3)
		setFrom(tr, trace.VarPowerupLevel, 250, 1)
		setFrom(tr, trace.VarLives, 450, 1)
		return tr
	}

	var first, second bytes.Buffer
	for i, out := range []*bytes.Buffer{&first, &second} {
		table, err := Annotate(build(), nil, DefaultConfig())
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if err := table.WriteTSV(out); err != nil {
			t.Fatalf("run %d: WriteTSV: %v", i, err)
		}
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two runs over the same trace differ byte-for-byte")
	}
}

func TestAnnotateFrameSecondRoundTrip(t *testing.T) {
	tr := testTrace(1000)
	press(tr, trace.ButtonB, 333, 667)
	setFrom(tr, trace.VarCoinCount, 999, 1)

	table, err := Annotate(tr, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	for _, event := range table.Events {
		start := int(math.Round(event.Onset * tr.FrameRate))
		if start != event.FrameStart {
			t.Errorf("%q: onset %v does not round-trip to frame %d",
				event.TrialType, event.Onset, event.FrameStart)
		}
		frames := int(math.Round(event.Duration * tr.FrameRate))
		if event.Duration != 0 && frames != event.FrameStop-event.FrameStart+1 {
			t.Errorf("%q: duration %v does not round-trip to span [%d, %d]",
				event.TrialType, event.Duration, event.FrameStart, event.FrameStop)
		}
	}
}

func TestFinalizeRejectsDefectiveEvents(t *testing.T) {
	tr := testTrace(100)
	cases := []struct {
		name   string
		event  events.Event
		reason string
	}{
		{"out of range", events.Event{TrialType: events.TrialCoinCollected, FrameStart: 50, FrameStop: 150}, "outside trace range"},
		{"inverted span", events.Event{TrialType: events.TrialCoinCollected, FrameStart: 50, FrameStop: 40}, "inverted"},
		{"negative onset", events.Event{TrialType: events.TrialCoinCollected, Onset: -1, FrameStart: 10, FrameStop: 10}, "negative"},
		{"unknown trial type", events.Event{TrialType: "Mystery", FrameStart: 10, FrameStop: 10}, "taxonomy"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := finalize(tr, []events.Event{c.event})
			var invalid *ValidationError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(invalid.Reason, c.reason) {
				t.Errorf("reason %q does not mention %q", invalid.Reason, c.reason)
			}
		})
	}
}

func TestFinalizeDuplicatePolicy(t *testing.T) {
	tr := testTrace(100)

	// Two kills of one sub-type on one frame are a defect.
	dup := []events.Event{
		{TrialType: events.TrialKillStomp, FrameStart: 10, FrameStop: 10},
		{TrialType: events.TrialKillStomp, FrameStart: 10, FrameStop: 10},
	}
	if _, err := finalize(tr, dup); err == nil {
		t.Error("duplicate kill events accepted")
	}

	// Coin bursts are the documented exception.
	coins := []events.Event{
		{TrialType: events.TrialCoinCollected, FrameStart: 10, FrameStop: 10},
		{TrialType: events.TrialCoinCollected, FrameStart: 10, FrameStop: 10},
	}
	if _, err := finalize(tr, coins); err != nil {
		t.Errorf("coin burst rejected: %v", err)
	}
}
