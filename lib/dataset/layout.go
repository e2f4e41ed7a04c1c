// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import "path/filepath"

// annotatedSuffix is the desc entity of the output files.
const annotatedSuffix = "_desc-annotated_events"

// OutputPaths returns the annotated events table path and its
// provenance sidecar path for a run, mirroring the BIDS tree under
// outputRoot: sub-*/ses-*/func/<run>_desc-annotated_events.tsv.
// Runs without subject or session entities land directly under
// outputRoot.
func OutputPaths(outputRoot string, run Run) (tsvPath, provenancePath string) {
	dir := outputRoot
	if run.Subject != "" {
		dir = filepath.Join(dir, run.Subject)
	}
	if run.Session != "" {
		dir = filepath.Join(dir, run.Session)
	}
	if run.Subject != "" || run.Session != "" {
		dir = filepath.Join(dir, "func")
	}
	stem := filepath.Join(dir, run.ID+annotatedSuffix)
	return stem + ".tsv", stem + ".json"
}
