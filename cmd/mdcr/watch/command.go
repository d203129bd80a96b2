// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
	"github.com/razorheadfx/mediocore/lib/render"
	"github.com/razorheadfx/mediocore/lib/watchui"
)

// minimumInterval keeps refreshes from turning the watcher itself into
// the load it is observing.
const minimumInterval = 100 * time.Millisecond

type watchParams struct {
	cli.GlobalParams
	Cores    string `flag:"cores" desc:"CPU list such as 0,2-3 (default: all cores)"`
	Interval string `flag:"interval,n" desc:"refresh interval" default:"1s"`
}

// Command returns the "watch" command.
func Command() *cli.Command {
	var params watchParams

	return &cli.Command{
		Name:    "watch",
		Summary: "Watch per-core frequencies live",
		Description: `Show a full-screen table of each core's governor, running frequency,
and scaling range, refreshed on an interval. The bar places the running
frequency within the core's hardware range.

Watch only reads sysfs and never writes a setting. It runs in the
foreground until you press q or Ctrl-C; it does not detach or keep
running in the background.

Cores whose driver does not report scaling_cur_freq show "-".`,
		Usage: "mdcr watch [flags]",
		Examples: []cli.Example{
			{
				Description: "Watch every core, refreshing each second",
				Command:     "mdcr watch",
			},
			{
				Description: "Watch cores 0-3 every 250ms",
				Command:     "mdcr watch --cores 0-3 --interval 250ms",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return cli.Validation("watch needs a terminal").
					WithHint("Use 'mdcr show' or 'mdcr show --json' for non-interactive output.")
			}
			model, err := newModel(params, logger)
			if err != nil {
				return err
			}

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return cli.Internal("watch: %w", err)
			}
			return nil
		},
	}
}

// newModel validates the parameters and builds the watch model. The
// selection is checked against one discovery up front so a typo fails
// before the screen is taken over.
func newModel(params watchParams, logger *slog.Logger) (watchui.Model, error) {
	interval, err := time.ParseDuration(params.Interval)
	if err != nil {
		return watchui.Model{}, cli.Validation("invalid --interval %q: %v", params.Interval, err)
	}
	if interval < minimumInterval {
		return watchui.Model{}, cli.Validation("--interval %s is below the minimum of %s", interval, minimumInterval)
	}
	selection, err := cli.ParseCores(params.Cores)
	if err != nil {
		return watchui.Model{}, err
	}
	cfg, cores, err := params.Discover(logger)
	if err != nil {
		return watchui.Model{}, err
	}
	if _, err := sampleCores(cores, selection, logger); err != nil {
		return watchui.Model{}, cli.Classify(err)
	}

	root := cfg.SysfsRoot
	return watchui.New(watchui.Config{
		Sampler: func() ([]render.Sample, error) {
			cores, err := cpufreq.DiscoverFrom(root, logger)
			if err != nil {
				return nil, err
			}
			return sampleCores(cores, selection, logger)
		},
		Interval: interval,
		Root:     root,
	}), nil
}

// sampleCores reads the running frequency of the selected cores, or of
// every core when selection is empty. A core without a readable
// running frequency is sampled with Current zero.
func sampleCores(cores []*cpufreq.Core, selection []int, logger *slog.Logger) ([]render.Sample, error) {
	byNumber := make(map[int]*cpufreq.Core, len(cores))
	for _, core := range cores {
		byNumber[core.Number()] = core
	}
	selected := cores
	if len(selection) > 0 {
		selected = make([]*cpufreq.Core, 0, len(selection))
		for _, number := range selection {
			core, ok := byNumber[number]
			if !ok {
				return nil, fmt.Errorf("%w: cpu%d", cpufreq.ErrUnknownCore, number)
			}
			selected = append(selected, core)
		}
	}

	samples := make([]render.Sample, 0, len(selected))
	for _, core := range selected {
		current, err := core.Current()
		if err != nil {
			logger.Debug("running frequency unavailable", "cpu", core.Number(), "error", err)
			current = 0
		}
		samples = append(samples, render.Sample{Settings: core.Settings(), Current: current})
	}
	return samples, nil
}
