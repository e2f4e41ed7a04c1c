// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/retrolab/retroevents/cmd/retroevents/cli"
	"github.com/retrolab/retroevents/lib/annotate"
	"github.com/retrolab/retroevents/lib/config"
	"github.com/retrolab/retroevents/lib/dataset"
	"github.com/retrolab/retroevents/lib/scenes"
	"github.com/retrolab/retroevents/lib/tracefile"
)

type validateParams struct {
	Config    string   `flag:"config,c" desc:"config file path (overrides RETROEVENTS_CONFIG)"`
	Replays   string   `flag:"replays" desc:"root of the replays dataset"`
	Clips     string   `flag:"clips" desc:"root of the scene clips dataset"`
	FrameRate float64  `flag:"frame-rate" desc:"frame rate for sidecars that do not record one"`
	Subjects  []string `flag:"subjects" desc:"restrict to these subjects"`
	Sessions  []string `flag:"sessions" desc:"restrict to these sessions"`
}

// Command returns the "validate" command.
func Command() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check sidecars and clips without writing anything",
		Description: `Run the full annotation pipeline over every discovered run, in memory,
and report one line per run: ok with frame and event counts, or the
first problem found (malformed sidecar, unknown kill code, bad scene
list). Nothing is written.

Exits 1 if any run fails, so this works as a pre-flight check in
dataset ingestion scripts.`,
		Usage: "retroevents validate [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Pre-flight a new acquisition session",
				Command:     "retroevents validate --replays /data/replays --subjects sub-07",
			},
			{
				Description: "Include the scene clip stage in the check",
				Command:     "retroevents validate --config study.yaml --clips /data/clips",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("validate takes no positional arguments, got %q", args[0])
			}
			cfg, err := resolveConfig(&params)
			if err != nil {
				return err
			}
			return runValidate(ctx, cfg, logger)
		},
	}
}

func resolveConfig(params *validateParams) (*config.Config, error) {
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
	if params.FrameRate > 0 {
		cfg.FrameRate = params.FrameRate
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
	return &cfg, nil
}

func runValidate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	core, err := cfg.AnnotateConfig()
	if err != nil {
		return err
	}

	runs, err := dataset.Discover(cfg.Replays, cfg.Subjects, cfg.Sessions)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return fmt.Errorf("no variables sidecars under %s match the filters", cfg.Replays)
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	failures := 0
	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary, err := checkRun(cfg, core, run)
		if err != nil {
			failures++
			fmt.Fprintf(tw, "FAIL\t%s\t%v\n", run.ID, err)
			continue
		}
		fmt.Fprintf(tw, "ok\t%s\t%s\n", run.ID, summary)
	}
	tw.Flush()

	if failures > 0 {
		logger.Error("validation failed", "runs", len(runs), "failed", failures)
		return &cli.ExitError{Code: 1}
	}
	logger.Info("all runs valid", "runs", len(runs))
	return nil
}

// checkRun mirrors the annotate pipeline up to (and including) table
// assembly and returns a one-line summary of the run.
func checkRun(cfg *config.Config, core annotate.Config, run dataset.Run) (string, error) {
	t, err := tracefile.ReadFile(run.TracePath)
	if err != nil {
		return "", err
	}
	if t.FrameRate == 0 {
		t.FrameRate = core.FrameRate
	}

	var sceneList annotate.SceneList
	if cfg.Clips != "" {
		sceneList, err = scenes.ForRun(cfg.Clips, run.ID)
		if err != nil {
			return "", err
		}
	}

	table, err := annotate.Annotate(t, sceneList, core)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d frames, %d events, %d clips",
		t.Len(), len(table.Events), len(sceneList)), nil
}
