// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package taxonomy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/retrolab/retroevents/cmd/retroevents/cli"
	"github.com/retrolab/retroevents/lib/annotate"
	"github.com/retrolab/retroevents/lib/config"
	"github.com/retrolab/retroevents/lib/events"
	"github.com/retrolab/retroevents/lib/trace"
)

type taxonomyParams struct {
	Config string `flag:"config,c" desc:"config file path (shows kill-code overrides)"`
}

// Command returns the "taxonomy" command.
func Command() *cli.Command {
	var params taxonomyParams

	return &cli.Command{
		Name:    "taxonomy",
		Summary: "Print the trial-type vocabulary",
		Description: `Print every trial type an annotation can emit, grouped by sort
category, along with the kill-code table in effect. With --config, the
table reflects the file's kill_code overrides; without it, the
built-in defaults.

Scene trial types are composed per clip ("scene-<name>_code-<n>") and
are listed as a pattern rather than enumerated.`,
		Usage: "retroevents taxonomy [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("taxonomy", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("taxonomy takes no positional arguments, got %q", args[0])
			}
			core, err := loadCore(params.Config)
			if err != nil {
				return err
			}
			return printTaxonomy(os.Stdout, core)
		},
	}
}

func loadCore(configFlag string) (annotate.Config, error) {
	if path := config.Locate(configFlag); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return annotate.Config{}, err
		}
		return cfg.AnnotateConfig()
	}
	return annotate.DefaultConfig(), nil
}

func printTaxonomy(w io.Writer, core annotate.Config) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)

	fmt.Fprintln(tw, "TRIAL TYPE\tCATEGORY")
	for _, trial := range events.FixedTrials {
		category, _ := events.CategoryOf(trial)
		fmt.Fprintf(tw, "%s\t%s\n", trial, category)
	}
	for _, button := range trace.Buttons {
		fmt.Fprintf(tw, "%s\t%s\n", events.ButtonTrial(button), events.CategoryAction)
	}
	fmt.Fprintf(tw, "%s\t%s\n", events.SceneTrial("<name>", "<n>"), events.CategoryScene)

	fmt.Fprintln(tw, "\nKILL CODE\tTRIAL TYPE")
	codes := make([]int64, 0, len(core.KillCodes))
	for code := range core.KillCodes {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		fmt.Fprintf(tw, "%d\t%s\n", code, core.KillCodes[code])
	}

	return tw.Flush()
}
