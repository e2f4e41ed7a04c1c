// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/retrolab/retroevents/cmd/retroevents/cli"
	"github.com/retrolab/retroevents/lib/config"
)

// annotateParams holds the parameters for "retroevents annotate".
// Every config file key has a matching flag; a flag set on the
// command line overrides the file value.
type annotateParams struct {
	Config    string   `flag:"config,c" desc:"config file path (overrides RETROEVENTS_CONFIG)"`
	Replays   string   `flag:"replays" desc:"root of the replays dataset"`
	Clips     string   `flag:"clips" desc:"root of the scene clips dataset"`
	Output    string   `flag:"output,o" desc:"root of the annotated events tree"`
	FrameRate float64  `flag:"frame-rate" desc:"frame rate for sidecars that do not record one"`
	Workers   int      `flag:"workers,j" desc:"parallel runs (0 = one per CPU)"`
	Subjects  []string `flag:"subjects" desc:"restrict to these subjects (sub-01,sub-02)"`
	Sessions  []string `flag:"sessions" desc:"restrict to these sessions (ses-001)"`
	Force     bool     `flag:"force,f" desc:"rewrite tables that already exist"`
}

// Command returns the "annotate" command.
func Command() *cli.Command {
	var params annotateParams

	return &cli.Command{
		Name:    "annotate",
		Summary: "Annotate discovered runs with sparse event tables",
		Description: `Discover gameplay variables sidecars under the replays root, derive a
sparse sorted event table from each, and write the tables (with JSON
provenance records) under the output root, mirroring the subject and
session layout of the input tree.

Runs are processed in parallel. A run that fails to annotate is logged
and skipped; the remaining runs still complete, and the command exits
non-zero if any run failed. Existing tables are left untouched unless
--force is given, so re-running after a partial failure only does the
missing work.`,
		Usage: "retroevents annotate [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("annotate", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Annotate everything named in the config file",
				Command:     "retroevents annotate --config study.yaml",
			},
			{
				Description: "One subject, explicit roots, eight workers",
				Command:     "retroevents annotate --replays /data/replays --output /data/annotated --subjects sub-01 -j 8",
			},
			{
				Description: "Rebuild tables after a taxonomy change",
				Command:     "retroevents annotate --config study.yaml --force",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("annotate takes no positional arguments, got %q", args[0])
			}
			cfg, err := resolveConfig(&params)
			if err != nil {
				return err
			}
			return runBatch(ctx, cfg, params.Force, logger)
		},
	}
}

// resolveConfig loads the config file (if any) and applies flag
// overrides. Flags left at their zero value do not override.
func resolveConfig(params *annotateParams) (*config.Config, error) {
	cfg := config.Default()
	if path := config.Locate(params.Config); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if params.Replays != "" {
		cfg.Replays = params.Replays
	}
	if params.Clips != "" {
		cfg.Clips = params.Clips
	}
	if params.Output != "" {
		cfg.Output = params.Output
	}
	if params.FrameRate > 0 {
		cfg.FrameRate = params.FrameRate
	}
	if params.Workers > 0 {
		cfg.Workers = params.Workers
	}
	if len(params.Subjects) > 0 {
		cfg.Subjects = params.Subjects
	}
	if len(params.Sessions) > 0 {
		cfg.Sessions = params.Sessions
	}

	if cfg.Replays == "" {
		return nil, fmt.Errorf("no replays root: set --replays or the replays key in the config file")
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("no output root: set --output or the output key in the config file")
	}
	return &cfg, nil
}
