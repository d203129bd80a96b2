// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package show

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	"github.com/razorheadfx/mediocore/lib/config"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
	"github.com/razorheadfx/mediocore/lib/render"
)

type showParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Cores string `flag:"cores" desc:"CPU list such as 0,2-3 (default: all cores)"`
	Sort  string `flag:"sort" desc:"row order" default:"number" choices:"number,governor,min,max"`
	Color string `flag:"color" desc:"styled output (default: from config)" choices:"auto,always,never"`
}

// Command returns the "show" command.
func Command() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show per-core governor and frequency limits",
		Description: `Print one row per core: the active governor, the scaling range the
governor may choose from, the hardware range, and the governors the
driver offers. Reads sysfs only; needs no privileges.`,
		Usage: "mdcr show [flags]",
		Examples: []cli.Example{
			{
				Description: "All cores",
				Command:     "mdcr show",
			},
			{
				Description: "Cores 0-3, highest scaling max first",
				Command:     "mdcr show --cores 0-3 --sort max",
			},
			{
				Description: "Machine-readable output",
				Command:     "mdcr show --json",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return run(params, logger)
		},
	}
}

func run(params showParams, logger *slog.Logger) error {
	selection, err := cli.ParseCores(params.Cores)
	if err != nil {
		return err
	}
	cfg, cores, err := params.Discover(logger)
	if err != nil {
		return err
	}

	settings, err := selectSettings(cores, selection)
	if err != nil {
		return cli.Classify(err)
	}
	sortSettings(settings, params.Sort)

	if done, err := params.EmitJSON(settings); done {
		return err
	}

	color := cfg.Color
	if params.Color != "" {
		color = config.ColorMode(params.Color)
	}
	printer := render.NewPrinter(os.Stdout, render.Styled(string(color), os.Stdout), render.DefaultTheme)
	return printer.Cores(settings)
}

// selectSettings returns the settings of the selected cores, or of all
// cores when selection is empty.
func selectSettings(cores []*cpufreq.Core, selection []int) ([]cpufreq.Settings, error) {
	byNumber := make(map[int]*cpufreq.Core, len(cores))
	for _, core := range cores {
		byNumber[core.Number()] = core
	}

	var settings []cpufreq.Settings
	if len(selection) == 0 {
		for _, core := range cores {
			settings = append(settings, core.Settings())
		}
		return settings, nil
	}
	for _, number := range selection {
		core, ok := byNumber[number]
		if !ok {
			return nil, fmt.Errorf("%w: cpu%d", cpufreq.ErrUnknownCore, number)
		}
		settings = append(settings, core.Settings())
	}
	return settings, nil
}

// sortSettings orders rows by key. Ties keep ascending core number;
// frequencies sort highest first.
func sortSettings(settings []cpufreq.Settings, key string) {
	slices.SortStableFunc(settings, func(a, b cpufreq.Settings) int {
		switch key {
		case "governor":
			if order := cmp.Compare(a.Governor, b.Governor); order != 0 {
				return order
			}
		case "min":
			if order := cmp.Compare(b.ScalingMin, a.ScalingMin); order != 0 {
				return order
			}
		case "max":
			if order := cmp.Compare(b.ScalingMax, a.ScalingMax); order != 0 {
				return order
			}
		}
		return cmp.Compare(a.Number, b.Number)
	})
}
