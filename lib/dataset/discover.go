// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/retrolab/retroevents/lib/tracefile"
)

// Run is one discovered annotation unit: a variables sidecar plus the
// identifiers parsed from its BIDS name.
type Run struct {
	// Subject and Session are the BIDS entities ("sub-01",
	// "ses-001"), empty when the sidecar name does not carry them.
	Subject string
	Session string

	// ID is the run identifier: the sidecar base name without the
	// desc entity and extensions.
	ID string

	// TracePath is the absolute or root-relative sidecar path.
	TracePath string
}

// Discover walks the replays root and returns every variables sidecar
// as a Run, filtered by the optional subject and session lists
// (exact entity match, e.g. "sub-01"). Results are ordered by path so
// batch output is stable.
func Discover(root string, subjects, sessions []string) ([]Run, error) {
	var runs []Run
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.Contains(d.Name(), "_desc-variables.") {
			return nil
		}
		if _, _, err := tracefile.DetectPath(path); err != nil {
			return nil
		}

		run := Run{ID: tracefile.RunID(path), TracePath: path}
		for _, token := range strings.Split(run.ID, "_") {
			switch {
			case strings.HasPrefix(token, "sub-"):
				run.Subject = token
			case strings.HasPrefix(token, "ses-"):
				run.Session = token
			}
		}

		if len(subjects) > 0 && !slices.Contains(subjects, run.Subject) {
			return nil
		}
		if len(sessions) > 0 && !slices.Contains(sessions, run.Session) {
			return nil
		}
		runs = append(runs, run)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	slices.SortFunc(runs, func(a, b Run) int {
		return strings.Compare(a.TracePath, b.TracePath)
	})
	return runs, nil
}
