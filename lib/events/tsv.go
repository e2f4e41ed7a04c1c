// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Columns is the fixed output column order of the events table.
var Columns = []string{"onset", "duration", "trial_type", "level", "frame_start", "frame_stop"}

// WriteTSV writes the table as tab-separated values with a header
// row. Onset and duration are written with exactly three decimals so
// identical inputs produce byte-identical output.
func (t *Table) WriteTSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, event := range t.Events {
		row := []string{
			formatSeconds(event.Onset),
			formatSeconds(event.Duration),
			string(event.TrialType),
			event.Level,
			strconv.Itoa(event.FrameStart),
			strconv.Itoa(event.FrameStop),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// formatSeconds renders a time value with the table's fixed 3-decimal
// precision.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
