// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package set

import (
	"context"
	"log/slog"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
)

type setParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Cores    string `flag:"cores" desc:"CPU list such as 0,2-3 (default: all cores)"`
	Governor string `flag:"governor,g" desc:"scaling governor to select"`
	Min      string `flag:"min" desc:"scaling minimum: hwmin, hwmax, kHz, or a value such as 1.2GHz"`
	Max      string `flag:"max" desc:"scaling maximum: hwmin, hwmax, kHz, or a value such as 2.4GHz"`
}

// Command returns the "set" command.
func Command() *cli.Command {
	var params setParams

	return &cli.Command{
		Name:    "set",
		Summary: "Change governor and scaling range",
		Description: `Change the governor, scaling minimum, and scaling maximum of the
selected cores. Every governor change is written first, then every
minimum, then every maximum, each in ascending core order.

Each value is checked against the core's limits before it is written:
the minimum must lie between the hardware minimum and the current
scaling maximum, the maximum between the current scaling minimum and the
hardware maximum. The first rejected or failed write stops the batch;
changes already written stay in place and are listed.

Writing sysfs normally requires root.`,
		Usage: "mdcr set [--cores LIST] [--governor NAME] [--min FREQ] [--max FREQ]",
		Examples: []cli.Example{
			{
				Description: "Switch every core to the performance governor",
				Command:     "sudo mdcr set --governor performance",
			},
			{
				Description: "Cap cores 0-3 at 1.6 GHz",
				Command:     "sudo mdcr set --cores 0-3 --max 1.6GHz",
			},
			{
				Description: "Open the full hardware range",
				Command:     "sudo mdcr set --min hwmin --max hwmax",
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

func run(params setParams, logger *slog.Logger) error {
	plan, err := buildPlan(params)
	if err != nil {
		return err
	}

	cfg, cores, err := params.Discover(logger)
	if err != nil {
		return err
	}

	logger = logger.With(
		"governor", plan.Governor.String(),
		"min", plan.Min.String(),
		"max", plan.Max.String(),
	)
	report, applyErr := cpufreq.Apply(cores, plan, logger)
	if applyErr == nil {
		logger.Info("settings applied", "changes", len(report.Applied))
	}
	return cli.PrintReport(&params.JSONOutput, cfg.Color, report, applyErr, logger)
}

// buildPlan turns the flags into a plan. Flag values are parsed before
// discovery so typos fail without touching sysfs.
func buildPlan(params setParams) (cpufreq.Plan, error) {
	var plan cpufreq.Plan

	cores, err := cli.ParseCores(params.Cores)
	if err != nil {
		return plan, err
	}
	plan.Cores = cores

	if params.Governor != "" {
		plan.Governor = cpufreq.SetGovernorTo(params.Governor)
	}
	if params.Min != "" {
		target, err := cpufreq.ParseFrequencyTarget(params.Min)
		if err != nil {
			return plan, cli.Validation("--min: %w", err)
		}
		plan.Min = target
	}
	if params.Max != "" {
		target, err := cpufreq.ParseFrequencyTarget(params.Max)
		if err != nil {
			return plan, cli.Validation("--max: %w", err)
		}
		plan.Max = target
	}

	if plan.IsEmpty() {
		return plan, cli.Wrap(cli.CategoryValidation, cpufreq.ErrNoChanges).
			WithHint("Pass at least one of --governor, --min, or --max.")
	}
	return plan, nil
}
