// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import "fmt"

// Button identifies one of the eight NES controller channels recorded
// in the trace.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonStart
	ButtonSelect

	buttonCount
)

// Buttons lists every controller channel in canonical order. The edge
// detector emits per-channel event streams in this order, so it also
// fixes the relative order of simultaneous button events in the final
// table.
var Buttons = [buttonCount]Button{
	ButtonUp, ButtonDown, ButtonLeft, ButtonRight,
	ButtonA, ButtonB, ButtonStart, ButtonSelect,
}

var buttonNames = [buttonCount]string{
	"UP", "DOWN", "LEFT", "RIGHT", "A", "B", "START", "SELECT",
}

// String returns the channel name as recorded in sidecars and used as
// the event trial type ("UP", "A", ...).
func (b Button) String() string {
	if b >= buttonCount {
		return fmt.Sprintf("button(%d)", uint8(b))
	}
	return buttonNames[b]
}

// ParseButton maps a sidecar column name to a Button. The name must be
// one of the eight uppercase channel names.
func ParseButton(name string) (Button, error) {
	for i, candidate := range buttonNames {
		if candidate == name {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("unknown controller button: %q", name)
}

// ButtonSet is the set of buttons held during one frame, one bit per
// channel.
type ButtonSet uint8

// Has reports whether b is held.
func (s ButtonSet) Has(b Button) bool {
	return s&(1<<b) != 0
}

// With returns the set extended with b.
func (s ButtonSet) With(b Button) ButtonSet {
	return s | 1<<b
}

// String returns the held buttons joined with "+", or "-" for the
// empty set. Used in error messages and debug logging only.
func (s ButtonSet) String() string {
	if s == 0 {
		return "-"
	}
	out := ""
	for _, b := range Buttons {
		if !s.Has(b) {
			continue
		}
		if out != "" {
			out += "+"
		}
		out += b.String()
	}
	return out
}
