// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package tracefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/tidwall/jsonc"

	"github.com/retrolab/retroevents/lib/codec"
	"github.com/retrolab/retroevents/lib/trace"
)

// ReadFile loads a variables sidecar and assembles it into a Trace.
// The run identifier is derived from the file name. A sidecar without
// a frame_rate scalar yields a Trace with FrameRate 0; the caller
// applies its configured rate before annotation.
func ReadFile(path string) (*trace.Trace, error) {
	format, compression, err := DetectPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	data, err = decompress(data, compression)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}

	raw, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	columns, err := columnsFromRaw(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return trace.FromColumns(RunID(path), columns)
}

func decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		reader, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return io.ReadAll(reader)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("unsupported compression %v", compression)
	}
}

func decode(data []byte, format Format) (map[string]any, error) {
	raw := make(map[string]any)
	switch format {
	case FormatJSON:
		// Tolerate comments and trailing commas: hand-tweaked sidecars
		// exist in older acquisitions.
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return nil, err
		}
	case FormatCBOR:
		if err := codec.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
	return raw, nil
}

// Scalar sidecar keys with reserved meaning.
const (
	keyLevel      = "level"
	keyFrameRate  = "frame_rate"
	keyFrameIndex = "frame_index"
)

// columnsFromRaw sorts the decoded key space into the typed column
// set: reserved scalars, button activity columns, integer variable
// columns. Scalars and arrays that fit none of those (free-form
// provenance strings and the like) are ignored.
func columnsFromRaw(raw map[string]any) (trace.Columns, error) {
	columns := trace.Columns{
		Variables: make(map[string][]int64),
		Buttons:   make(map[trace.Button][]bool),
	}

	for key, value := range raw {
		switch key {
		case keyLevel:
			level, ok := value.(string)
			if !ok {
				return columns, fmt.Errorf("scalar %q: expected string, got %T", key, value)
			}
			columns.Level = level
			continue
		case keyFrameRate:
			rate, err := toFloat(value)
			if err != nil {
				return columns, fmt.Errorf("scalar %q: %w", key, err)
			}
			columns.FrameRate = rate
			continue
		}

		array, ok := value.([]any)
		if !ok {
			continue
		}

		if key == keyFrameIndex {
			index := make([]int, len(array))
			for i, element := range array {
				v, err := toInt64(element)
				if err != nil {
					return columns, fmt.Errorf("column %q element %d: %w", key, i, err)
				}
				index[i] = int(v)
			}
			columns.Index = index
			continue
		}

		if button, err := trace.ParseButton(key); err == nil {
			column := make([]bool, len(array))
			for i, element := range array {
				v, err := toInt64(element)
				if err != nil {
					return columns, fmt.Errorf("column %q element %d: %w", key, i, err)
				}
				column[i] = v != 0
			}
			columns.Buttons[button] = column
			continue
		}

		column := make([]int64, 0, len(array))
		numeric := true
		for _, element := range array {
			v, err := toInt64(element)
			if err != nil {
				numeric = false
				break
			}
			column = append(column, v)
		}
		if numeric {
			columns.Variables[key] = column
		}
	}

	return columns, nil
}

// toInt64 coerces the numeric representations the two decoders
// produce. Floats are accepted only when integral: the instrumented
// variables are counters and flags, and a fractional value means the
// sidecar is broken.
func toInt64(v any) (int64, error) {
	switch value := v.(type) {
	case bool:
		if value {
			return 1, nil
		}
		return 0, nil
	case int64:
		return value, nil
	case uint64:
		return int64(value), nil
	case float64:
		if value != float64(int64(value)) {
			return 0, fmt.Errorf("non-integral value %v", value)
		}
		return int64(value), nil
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return i, nil
		}
		f, err := value.Float64()
		if err != nil {
			return 0, fmt.Errorf("non-numeric value %q", value.String())
		}
		return toInt64(f)
	default:
		return 0, fmt.Errorf("non-numeric value of type %T", v)
	}
}

func toFloat(v any) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case int64:
		return float64(value), nil
	case uint64:
		return float64(value), nil
	case json.Number:
		return value.Float64()
	default:
		return 0, fmt.Errorf("non-numeric value of type %T", v)
	}
}
