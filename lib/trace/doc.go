// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package trace models one run's frame-indexed gameplay trace: the
// ordered per-frame records of emulator game-state variables and
// controller input captured while a recorded session was replayed.
//
// A Trace is the read-only input to the annotation core. It is built
// once (normally by lib/tracefile from a variables sidecar), validated,
// and then only ever scanned. Nothing in this module mutates a Trace
// after construction.
//
// The variable names used by the classifier (lives, powerup_level,
// coin_count, score, the enemy kill slots, the brick flags) are fixed
// by the instrumentation of the replay tool and exposed here as
// constants so that every package spells them identically.
package trace
