// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import "fmt"

// Columns is the column-oriented form of a trace as stored in
// variables sidecars: one array per variable and per button, all of
// equal length, plus run-level scalars.
type Columns struct {
	// Level is the world/level identifier scalar.
	Level string

	// FrameRate is the capture rate. Zero means the sidecar did not
	// record one and the caller's configured rate applies.
	FrameRate float64

	// Index is the optional explicit frame index column. When nil,
	// indices are implicit (0..n-1). When present it must be
	// contiguous from 0.
	Index []int

	// Variables holds one value column per instrumented variable.
	Variables map[string][]int64

	// Buttons holds one activity column per controller channel.
	Buttons map[Button][]bool
}

// FromColumns assembles and checks a row-oriented Trace from sidecar
// columns. All columns must share one length and an explicit index
// column must be contiguous from 0; violations are reported as
// MalformedTraceError.
func FromColumns(run string, c Columns) (*Trace, error) {
	n := -1
	checkLen := func(name string, length int) error {
		if n == -1 {
			n = length
			return nil
		}
		if length != n {
			return &MalformedTraceError{Run: run, Frame: -1,
				Reason: fmt.Sprintf("column %q has %d frames, expected %d", name, length, n)}
		}
		return nil
	}

	if c.Index != nil {
		if err := checkLen("frame_index", len(c.Index)); err != nil {
			return nil, err
		}
	}
	for name, column := range c.Variables {
		if err := checkLen(name, len(column)); err != nil {
			return nil, err
		}
	}
	for button, column := range c.Buttons {
		if err := checkLen(button.String(), len(column)); err != nil {
			return nil, err
		}
	}
	if n <= 0 {
		return nil, &MalformedTraceError{Run: run, Frame: -1, Reason: "no frame columns"}
	}

	for i, index := range c.Index {
		if index != i {
			return nil, &MalformedTraceError{Run: run, Frame: i,
				Reason: fmt.Sprintf("non-contiguous frame index %d", index)}
		}
	}

	t := &Trace{
		Run:       run,
		Level:     c.Level,
		FrameRate: c.FrameRate,
		Frames:    make([]FrameRecord, n),
	}
	for i := range t.Frames {
		variables := make(map[string]int64, len(c.Variables))
		for name, column := range c.Variables {
			variables[name] = column[i]
		}
		var input ButtonSet
		for button, column := range c.Buttons {
			if column[i] {
				input = input.With(button)
			}
		}
		t.Frames[i] = FrameRecord{Index: i, Input: input, Variables: variables}
	}
	return t, nil
}
