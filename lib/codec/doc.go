// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the shared CBOR configuration for binary
// variables sidecars.
//
// The annotation pipeline reads two sidecar serializations with a
// clear boundary:
//
//   - JSON (optionally JSONC) for hand-inspectable sidecars and scene
//     clip metadata, handled where they are read.
//   - CBOR for compact machine-produced variables sidecars, handled
//     through this package so every reader decodes identically.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so a
// sidecar re-encoded from the same logical data hashes identically —
// the provenance records written next to each output table depend on
// that.
package codec
