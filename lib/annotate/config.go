// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"fmt"

	"github.com/retrolab/retroevents/lib/events"
)

// Config carries the run-independent parameters of one core
// invocation. It is passed explicitly rather than read from ambient
// state so a run's output is reproducible from its trace and config
// alone. Callers must treat a Config as immutable once in use.
type Config struct {
	// FrameRate is the fallback capture rate in frames per second,
	// applied when a trace does not record its own.
	FrameRate float64

	// KillCodes maps the kill-method code recorded in an enemy kill
	// slot to the combat trial type it stands for. A nonzero code
	// outside this table is an UnknownCodeError, never a default.
	KillCodes map[int64]events.TrialType
}

// DefaultFrameRate is the NES capture rate of the recorded sessions.
const DefaultFrameRate = 60

// DefaultConfig returns the standard configuration: 60 fps and the
// kill-method codes of the stock instrumentation (4 jump impact,
// 34 projectile/shell hit, 132 kicked shell).
func DefaultConfig() Config {
	return Config{
		FrameRate: DefaultFrameRate,
		KillCodes: map[int64]events.TrialType{
			4:   events.TrialKillStomp,
			34:  events.TrialKillImpact,
			132: events.TrialKillKick,
		},
	}
}

// Validate checks that the configuration is usable: a positive frame
// rate and a kill-code table whose values are combat trial types.
func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %v", c.FrameRate)
	}
	if len(c.KillCodes) == 0 {
		return fmt.Errorf("kill-code table is empty")
	}
	for code, trial := range c.KillCodes {
		category, ok := events.CategoryOf(trial)
		if !ok || category != events.CategoryCombat {
			return fmt.Errorf("kill code %d maps to %q, not a combat trial type", code, trial)
		}
	}
	return nil
}

// onsetAt converts a frame index to seconds at the given rate.
func onsetAt(rate float64, frame int) float64 {
	return float64(frame) / rate
}

// spanSeconds converts a closed frame span to seconds. The final
// frame is included: a single-frame span lasts one frame period.
func spanSeconds(rate float64, start, stop int) float64 {
	return float64(stop-start+1) / rate
}
