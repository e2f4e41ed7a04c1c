// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package annotate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/retrolab/retroevents/cmd/retroevents/cli"
	"github.com/retrolab/retroevents/lib/annotate"
	"github.com/retrolab/retroevents/lib/config"
	"github.com/retrolab/retroevents/lib/dataset"
	"github.com/retrolab/retroevents/lib/scenes"
	"github.com/retrolab/retroevents/lib/tracefile"
	"github.com/retrolab/retroevents/lib/version"
)

// runBatch discovers runs and annotates them on a bounded worker
// pool. Per-run failures are logged and counted; the batch keeps
// going so one corrupt sidecar does not sink a night of processing.
func runBatch(ctx context.Context, cfg *config.Config, force bool, logger *slog.Logger) error {
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

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(runs) {
		workers = len(runs)
	}
	logger.Info("starting batch",
		"runs", len(runs), "workers", workers, "output", cfg.Output)

	jobs := make(chan dataset.Run)
	var failed, skipped, written atomic.Int64

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for run := range jobs {
				runLogger := logger.With("run", run.ID)
				switch err := annotateRun(cfg, core, run, force); {
				case err == errExists:
					skipped.Add(1)
					runLogger.Info("table exists, skipping")
				case err != nil:
					failed.Add(1)
					runLogger.Error("annotation failed", "error", err)
				default:
					written.Add(1)
					runLogger.Info("table written")
				}
			}
		}()
	}

feed:
	for _, run := range runs {
		select {
		case jobs <- run:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info("batch complete",
		"written", written.Load(), "skipped", skipped.Load(), "failed", failed.Load())
	if failed.Load() > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// errExists reports an output table that is already present. It is a
// sentinel, not a failure.
var errExists = fmt.Errorf("output exists")

// annotateRun executes the full pipeline for one run: read the
// sidecar, merge scene clips when a clips root is configured, derive
// the table, and write the TSV plus its provenance record.
func annotateRun(cfg *config.Config, core annotate.Config, run dataset.Run, force bool) error {
	tsvPath, provenancePath := dataset.OutputPaths(cfg.Output, run)
	if !force {
		if _, err := os.Stat(tsvPath); err == nil {
			return errExists
		}
	}

	t, err := tracefile.ReadFile(run.TracePath)
	if err != nil {
		return err
	}
	if t.FrameRate == 0 {
		t.FrameRate = core.FrameRate
	}

	var sceneList annotate.SceneList
	if cfg.Clips != "" {
		sceneList, err = scenes.ForRun(cfg.Clips, run.ID)
		if err != nil {
			return err
		}
	}

	table, err := annotate.Annotate(t, sceneList, core)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(tsvPath), 0o755); err != nil {
		return err
	}
	file, err := os.Create(tsvPath)
	if err != nil {
		return err
	}
	if err := table.WriteTSV(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	hash, err := dataset.HashSource(run.TracePath)
	if err != nil {
		return err
	}
	return dataset.WriteProvenance(provenancePath, dataset.Provenance{
		Source:      run.TracePath,
		SourceHash:  hash,
		FrameRate:   t.FrameRate,
		ToolVersion: version.Info(),
		SceneClips:  len(sceneList),
		EventCounts: table.CountByCategory(),
	})
}
