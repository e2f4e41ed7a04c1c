// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracefile reads variables sidecars produced by the external
// replay tool and assembles them into trace.Trace values.
//
// Sidecars are column-oriented: one array per instrumented variable
// and per controller button, plus run-level scalars (level,
// frame_rate). Two serializations and two compressions are supported,
// selected purely by file extension:
//
//	run-01_desc-variables.json       JSON (JSONC tolerated)
//	run-01_desc-variables.json.zst   zstd-compressed JSON
//	run-01_desc-variables.json.lz4   LZ4-compressed JSON
//	run-01_desc-variables.cbor       CBOR (lib/codec configuration)
//	run-01_desc-variables.cbor.zst   zstd-compressed CBOR
//
// The reader is deliberately strict about structure (ragged columns
// and bad frame indices are trace.MalformedTraceError) and lenient
// about content: unknown scalar keys and non-numeric columns are
// ignored, so instrumentation can add metadata without breaking old
// readers.
package tracefile
