// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package preset

import (
	"context"
	"log/slog"
	"os"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
	"github.com/razorheadfx/mediocore/lib/render"
)

// Command returns the "preset" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "preset",
		Summary: "List and apply named settings",
		Description: `Presets are named plans. Three are built in:

  performance   performance governor, scaling max at the hardware max
  powersave     powersave governor, scaling range pinned to the hardware min
  full-range    scaling range opened to the hardware range

Profiles under "profiles:" in the configuration file are listed and
applied the same way.`,
		Subcommands: []*cli.Command{
			listCommand(),
			applyCommand(),
		},
	}
}

type listParams struct {
	cli.GlobalParams
	cli.JSONOutput
}

// presetEntry is the --json form of one preset.
type presetEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Builtin     bool   `json:"builtin"`
	Governor    string `json:"governor"`
	Min         string `json:"min"`
	Max         string `json:"max"`
	Cores       string `json:"cores,omitempty"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List built-in presets and configured profiles",
		Usage:   "mdcr preset list [flags]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			presets := cfg.Presets()

			entries := make([]presetEntry, 0, len(presets))
			for _, preset := range presets {
				_, builtin := cpufreq.LookupPreset(preset.Name)
				entries = append(entries, presetEntry{
					Name:        preset.Name,
					Description: preset.Description,
					Builtin:     builtin,
					Governor:    preset.Plan.Governor.String(),
					Min:         preset.Plan.Min.String(),
					Max:         preset.Plan.Max.String(),
					Cores:       cpufreq.FormatCoreList(preset.Plan.Cores),
				})
			}
			if done, err := params.EmitJSON(entries); done {
				return err
			}

			printer := render.NewPrinter(os.Stdout, render.Styled(string(cfg.Color), os.Stdout), render.DefaultTheme)
			return printer.Presets(presets)
		},
	}
}

type applyParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Cores string `flag:"cores" desc:"CPU list such as 0,2-3 (default: the profile's cores, else all)"`
}

func applyCommand() *cli.Command {
	var params applyParams

	return &cli.Command{
		Name:    "apply",
		Summary: "Apply a preset or profile",
		Description: `Apply a preset as one batch: governor changes first, then scaling
minimums, then scaling maximums. A preset is not atomic: if a core
rejects a value, the batch stops and earlier changes stay applied.`,
		Usage: "mdcr preset apply NAME [flags]",
		Examples: []cli.Example{
			{
				Description: "Run every core flat out",
				Command:     "sudo mdcr preset apply performance",
			},
			{
				Description: "Quiet down the efficiency cores",
				Command:     "sudo mdcr preset apply powersave --cores 4-7",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one preset name, got %d arguments", len(args)).
					WithHint("Run 'mdcr preset list' to see the presets.")
			}
			return runApply(args[0], params, logger)
		},
	}
}

func runApply(name string, params applyParams, logger *slog.Logger) error {
	selection, err := cli.ParseCores(params.Cores)
	if err != nil {
		return err
	}
	cfg, err := params.LoadConfig()
	if err != nil {
		return err
	}
	preset, err := cfg.Preset(name)
	if err != nil {
		return cli.NotFound("%w", err).WithHint("Run 'mdcr preset list' to see the presets.")
	}
	plan := preset.Plan
	if selection != nil {
		plan.Cores = selection
	}

	cores, err := cpufreq.DiscoverFrom(cfg.SysfsRoot, logger)
	if err != nil {
		return cli.Classify(err)
	}

	logger = logger.With("preset", preset.Name)
	report, applyErr := cpufreq.Apply(cores, plan, logger)
	if applyErr == nil {
		logger.Info("preset applied", "changes", len(report.Applied))
	}
	return cli.PrintReport(&params.JSONOutput, cfg.Color, report, applyErr, logger)
}
