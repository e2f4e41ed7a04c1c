// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for retroevents
// packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes contents under dir, creating parent directories,
// and returns the full path. Fails the test on any error.
func WriteFile(t *testing.T, dir, name string, contents []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// ReadFile reads a file or fails the test.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}
