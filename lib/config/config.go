// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the retroevents
// CLI.
//
// Configuration is loaded from a single YAML file specified by:
//   - the RETROEVENTS_CONFIG environment variable, or
//   - the --config flag passed to the command.
//
// There are no fallbacks or automatic discovery, and command-line
// flags override file values. This keeps a batch annotation
// reproducible from its config file and flags alone, with no hidden
// overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/retrolab/retroevents/lib/annotate"
	"github.com/retrolab/retroevents/lib/events"
)

// EnvVar names the environment variable pointing at the config file.
const EnvVar = "RETROEVENTS_CONFIG"

// Config is the file-level configuration of a batch annotation.
type Config struct {
	// Replays is the root of the replays dataset holding the
	// variables sidecars.
	Replays string `yaml:"replays"`

	// Clips is the root of the scene clips dataset. Empty disables
	// the scene merge stage.
	Clips string `yaml:"clips,omitempty"`

	// Output is the root of the annotated events tree.
	Output string `yaml:"output"`

	// FrameRate applies to sidecars that do not record their own.
	FrameRate float64 `yaml:"frame_rate,omitempty"`

	// Workers bounds the parallel run fan-out; 0 means one worker
	// per CPU.
	Workers int `yaml:"workers,omitempty"`

	// Subjects and Sessions restrict discovery to the listed BIDS
	// entities ("sub-01", "ses-001"). Empty means all.
	Subjects []string `yaml:"subjects,omitempty"`
	Sessions []string `yaml:"sessions,omitempty"`

	// KillCodes overrides the kill-method code table. Keys are the
	// raw codes, values the combat trial types they map to.
	KillCodes map[int64]string `yaml:"kill_codes,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{FrameRate: annotate.DefaultFrameRate}
}

// Locate resolves the config file path: the flag value wins, then the
// environment variable. Empty means no config file, which is valid —
// everything has a flag.
func Locate(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvVar)
}

// Load reads and parses the config file. Unknown keys are rejected so
// a typoed option fails loudly instead of silently applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.FrameRate == 0 {
		cfg.FrameRate = annotate.DefaultFrameRate
	}
	return &cfg, nil
}

// AnnotateConfig builds the immutable core configuration from the
// file values: the default kill-code table with any overrides
// applied, and the configured frame rate.
func (c *Config) AnnotateConfig() (annotate.Config, error) {
	cfg := annotate.DefaultConfig()
	cfg.FrameRate = c.FrameRate

	if len(c.KillCodes) > 0 {
		table := make(map[int64]events.TrialType, len(c.KillCodes))
		for code, trial := range c.KillCodes {
			table[code] = events.TrialType(trial)
		}
		cfg.KillCodes = table
	}

	if err := cfg.Validate(); err != nil {
		return annotate.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
