// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset handles the on-disk layout of a replays dataset:
// discovering variables sidecars under the BIDS subject/session tree,
// computing the mirrored output paths for annotated event tables, and
// writing the provenance sidecar that records where each table came
// from.
package dataset
