// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete retroevents CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	annotatecmd "github.com/retrolab/retroevents/cmd/retroevents/annotate"
	"github.com/retrolab/retroevents/cmd/retroevents/cli"
	taxonomycmd "github.com/retrolab/retroevents/cmd/retroevents/taxonomy"
	validatecmd "github.com/retrolab/retroevents/cmd/retroevents/validate"
	"github.com/retrolab/retroevents/lib/version"
)

// Root builds and returns the complete retroevents CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "retroevents",
		Description: `Retroevents: sparse event tables from emulator gameplay traces.

Derive BIDS-style annotated event tables (button presses, enemy kills,
damage, collections, scene traversals) from the per-frame variables
sidecars recorded during gameplay acquisition.`,
		Subcommands: []*cli.Command{
			annotatecmd.Command(),
			validatecmd.Command(),
			taxonomycmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("retroevents %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Pre-flight a dataset without writing anything",
				Command:     "retroevents validate --replays /data/replays",
			},
			{
				Description: "Annotate every run named in the config file",
				Command:     "retroevents annotate --config study.yaml",
			},
			{
				Description: "Show the trial-type vocabulary",
				Command:     "retroevents taxonomy",
			},
		},
	}
}
