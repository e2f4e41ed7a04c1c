// Copyright 2026 The Retroevents Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Config   string   `flag:"config" desc:"config file path"`
		Force    bool     `flag:"force,f" desc:"overwrite existing outputs"`
		Workers  int      `flag:"workers" desc:"parallel workers"`
		Frames   int64    `flag:"frames" desc:"frame limit"`
		Rate     float64  `flag:"frame-rate" desc:"sampling rate"`
		Subjects []string `flag:"subjects" desc:"subject filter"`
		Untagged string   // no flag tag — should be skipped
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--config", "/etc/retroevents.yaml",
		"-f",
		"--workers", "8",
		"--frames", "1099511627776",
		"--frame-rate", "59.94",
		"--subjects", "sub-01,sub-02",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Config != "/etc/retroevents.yaml" {
		t.Errorf("Config = %q", p.Config)
	}
	if !p.Force {
		t.Error("Force = false, want true")
	}
	if p.Workers != 8 {
		t.Errorf("Workers = %d, want 8", p.Workers)
	}
	if p.Frames != 1099511627776 {
		t.Errorf("Frames = %d", p.Frames)
	}
	if p.Rate != 59.94 {
		t.Errorf("Rate = %f, want 59.94", p.Rate)
	}
	if len(p.Subjects) != 2 || p.Subjects[0] != "sub-01" {
		t.Errorf("Subjects = %v", p.Subjects)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field got a flag")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Rate    float64 `flag:"frame-rate" default:"60" desc:"frame rate"`
		Workers int     `flag:"workers" default:"4" desc:"workers"`
		Force   bool    `flag:"force" default:"false" desc:"force"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Rate != 60 {
		t.Errorf("Rate default = %v, want 60", p.Rate)
	}
	if p.Workers != 4 {
		t.Errorf("Workers default = %d, want 4", p.Workers)
	}
	if p.Force {
		t.Error("Force default = true, want false")
	}
}

func TestBindFlags_EmbeddedStruct(t *testing.T) {
	type common struct {
		Config string `flag:"config" desc:"config file path"`
	}
	type params struct {
		common
		Force bool `flag:"force" desc:"overwrite"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--config", "a.yaml", "--force"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Config != "a.yaml" || !p.Force {
		t.Errorf("embedded binding: %+v", p)
	}
}

func TestBindFlags_RejectsNonStruct(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(42, flagSet); err == nil {
		t.Fatal("non-pointer accepted")
	}
	value := "hello"
	if err := BindFlags(&value, flagSet); err == nil {
		t.Fatal("pointer to non-struct accepted")
	}
}

func TestBindFlags_UnsupportedTypeErrors(t *testing.T) {
	type params struct {
		Bad map[string]int `flag:"bad" desc:"unsupported"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	err := BindFlags(&p, flagSet)
	if err == nil {
		t.Fatal("map field accepted")
	}
	if !strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("error = %v", err)
	}
}

func TestFlagsFromParams_PanicsOnBadParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid params")
		}
	}()
	FlagsFromParams("bad", 42)
}
