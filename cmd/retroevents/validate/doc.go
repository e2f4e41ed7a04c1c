// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate implements the "retroevents validate" command: a
// dry run of the annotation pipeline that reports per-run problems
// without writing any output.
package validate
