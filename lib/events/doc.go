// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package events defines the output side of the annotation pipeline:
// the Event record, the closed trial-type taxonomy, the category
// ordering used to break onset ties, and the tab-separated table
// format consumed by downstream analysis.
//
// The taxonomy is versioned with the tool: adding a trial type is a
// new release, and nothing in the pipeline ever emits a label outside
// the tables in this package.
package events
