// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package tracefile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a sidecar serialization.
type Format uint8

const (
	FormatJSON Format = iota
	FormatCBOR
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// Compression identifies the optional outer compression of a sidecar.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// DetectPath determines a sidecar's serialization and compression
// from its file name. Compression suffixes stack outside the format
// suffix (name.json.zst).
func DetectPath(path string) (Format, Compression, error) {
	name := filepath.Base(path)

	compression := CompressionNone
	switch {
	case strings.HasSuffix(name, ".zst"):
		compression = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	case strings.HasSuffix(name, ".lz4"):
		compression = CompressionLZ4
		name = strings.TrimSuffix(name, ".lz4")
	}

	switch {
	case strings.HasSuffix(name, ".json"):
		return FormatJSON, compression, nil
	case strings.HasSuffix(name, ".cbor"):
		return FormatCBOR, compression, nil
	default:
		return 0, 0, fmt.Errorf("unsupported trace file name %q", filepath.Base(path))
	}
}

// variablesSuffix is the BIDS desc entity marking a variables sidecar.
const variablesSuffix = "_desc-variables"

// RunID derives the run identifier from a sidecar path: the base name
// with compression, format, and the variables desc entity stripped.
func RunID(path string) string {
	name := filepath.Base(path)
	for _, suffix := range []string{".zst", ".lz4", ".json", ".cbor"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return strings.TrimSuffix(name, variablesSuffix)
}
