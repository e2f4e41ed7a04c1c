// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/zeebo/blake3"
)

// Provenance is the JSON sidecar written next to each annotated
// events table. It ties the table to the exact sidecar bytes it was
// derived from, so a table can be audited against its source years
// later.
type Provenance struct {
	// Source is the variables sidecar the table was derived from.
	Source string `json:"Source"`

	// SourceHash is the BLAKE3-256 hex digest of the sidecar bytes
	// as stored (compressed form hashes as-is).
	SourceHash string `json:"SourceHash"`

	// FrameRate is the rate used for frame-to-seconds conversion.
	FrameRate float64 `json:"FrameRate"`

	// ToolVersion is the retroevents version that wrote the table.
	ToolVersion string `json:"ToolVersion"`

	// SceneClips counts the scene entries merged into the table;
	// 0 means the scene stage was skipped or matched nothing.
	SceneClips int `json:"SceneClips"`

	// EventCounts tallies table rows per sort category.
	EventCounts map[string]int `json:"EventCounts"`
}

// HashSource computes the BLAKE3-256 hex digest of a file's bytes.
func HashSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	digest := blake3.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}

// WriteProvenance writes the provenance sidecar with stable,
// indented formatting.
func WriteProvenance(path string, p Provenance) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding provenance: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
