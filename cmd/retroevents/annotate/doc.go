// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package annotate implements the "retroevents annotate" command: it
// discovers variables sidecars under the replays root, runs the
// annotation pipeline over each run on a bounded worker pool, and
// writes the events table plus its provenance record under the output
// root.
package annotate
