// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package scenes loads the clip metadata files written by the
// external scene-segmentation tool and assembles a run's scene
// boundary list for the merger.
//
// One JSON file describes one clip: its frame span within the run,
// the scene it traverses, and the traversal code. Files are JSONC
// tolerant for the same reason sidecars are — some acquisitions carry
// hand-annotated clip files.
package scenes

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/retrolab/retroevents/lib/annotate"
)

// Clip is the metadata of one scene clip as stored on disk. Field
// names follow the scene tool's output.
type Clip struct {
	ClipCode      FlexString `json:"ClipCode"`
	StartFrame    int        `json:"StartFrame"`
	EndFrame      int        `json:"EndFrame"`
	SceneFullName string     `json:"SceneFullName"`
	LevelFullName string     `json:"LevelFullName"`
}

// FlexString decodes from either a JSON string or a JSON number;
// older scene tool releases wrote clip codes as bare integers.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*s = FlexString(number.String())
	return nil
}

// Parse decodes one clip file's contents.
func Parse(data []byte) (*Clip, error) {
	var clip Clip
	if err := json.Unmarshal(jsonc.ToJSON(data), &clip); err != nil {
		return nil, fmt.Errorf("parsing clip: %w", err)
	}
	return &clip, nil
}

// ReadFile reads and parses one clip file.
func ReadFile(path string) (*Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	clip, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

// Entry converts the clip to its scene boundary entry.
func (c *Clip) Entry() annotate.SceneEntry {
	return annotate.SceneEntry{
		Scene:      c.SceneFullName,
		Code:       string(c.ClipCode),
		Level:      c.LevelFullName,
		FrameStart: c.StartFrame,
		FrameStop:  c.EndFrame,
	}
}

// ForRun walks the clips tree and assembles the scene list of one
// run, matching clip files whose names carry the run's BIDS entities
// (sub-*, ses-*, run-*). Entries are ordered by frame start; the
// merger still validates non-overlap, which discovery cannot repair.
//
// A missing clips directory or a run with no matching clips yields a
// nil list — the scene stage is optional end to end.
func ForRun(root, runID string) (annotate.SceneList, error) {
	if root == "" {
		return nil, nil
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	entities := runEntities(runID)
	var list annotate.SceneList

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		if !matchesEntities(d.Name(), entities) {
			return nil
		}
		clip, err := ReadFile(path)
		if err != nil {
			return err
		}
		list = append(list, clip.Entry())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting clips for %s: %w", runID, err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].FrameStart < list[j].FrameStart
	})
	return list, nil
}

// runEntities extracts the identifying BIDS entities from a run ID.
func runEntities(runID string) []string {
	var entities []string
	for _, token := range strings.Split(runID, "_") {
		if strings.HasPrefix(token, "sub-") ||
			strings.HasPrefix(token, "ses-") ||
			strings.HasPrefix(token, "run-") {
			entities = append(entities, token)
		}
	}
	return entities
}

func matchesEntities(name string, entities []string) bool {
	if len(entities) == 0 {
		return false
	}
	for _, entity := range entities {
		if !strings.Contains(name, entity) {
			return false
		}
	}
	return true
}
