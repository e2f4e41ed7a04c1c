// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package taxonomy implements the "retroevents taxonomy" command,
// which prints the trial-type vocabulary an annotation can emit.
package taxonomy
