// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package annotate is the event extraction and classification core.
// It turns one run's validated trace into a sorted event table in
// four stages:
//
//   - edge detection over each controller channel, producing button
//     press intervals
//   - a state transition classifier over the game variables, producing
//     kill, damage, and collection events from frame-to-frame deltas
//   - an optional scene merger folding externally supplied scene
//     boundaries into the stream
//   - the timeline assembler, which adds the run metadata event,
//     converts frames to seconds, sorts with a deterministic
//     tie-break, and validates the result
//
// Every invocation is a pure, single-threaded pass over one trace: no
// I/O, no shared state, no retries. Runs are independent, so callers
// batch-processing a dataset fan individual Annotate calls out to
// workers and isolate per-run failures.
package annotate
