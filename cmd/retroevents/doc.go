// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Retroevents is the CLI for deriving annotated event tables from
// emulator gameplay traces. It provides subcommands for batch
// annotation (annotate), pre-flight dataset checks (validate), and
// inspecting the trial-type vocabulary (taxonomy).
package main
