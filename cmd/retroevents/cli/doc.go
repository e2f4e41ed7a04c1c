// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the retroevents
// binary: a tree of [Command] values, each with flags, help text, and
// a Run function. Commands are assembled into a tree in
// cmd/retroevents/commands and dispatched from main.
//
// Flags are bound from struct tags via [FlagsFromParams], so a
// command's parameters live in one struct next to its Run function.
package cli
