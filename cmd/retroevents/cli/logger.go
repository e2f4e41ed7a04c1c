// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command
// operations. When stderr is a terminal, uses slog.TextHandler for
// human-readable output. When stderr is piped or redirected (CI,
// scripts, batch jobs), uses slog.JSONHandler for machine-parseable
// output.
//
// The framework scopes the logger with the command path before
// invoking Run; commands add their own context via With():
//
//	logger = logger.With("run", run.ID)
func NewCommandLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
