// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete mdcr command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	doctorcmd "github.com/razorheadfx/mediocore/cmd/mdcr/doctor"
	presetcmd "github.com/razorheadfx/mediocore/cmd/mdcr/preset"
	setcmd "github.com/razorheadfx/mediocore/cmd/mdcr/set"
	showcmd "github.com/razorheadfx/mediocore/cmd/mdcr/show"
	snapshotcmd "github.com/razorheadfx/mediocore/cmd/mdcr/snapshot"
	watchcmd "github.com/razorheadfx/mediocore/cmd/mdcr/watch"
	"github.com/razorheadfx/mediocore/lib/version"
)

// Root builds and returns the complete mdcr command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "mdcr",
		Description: `mdcr: inspect and tune Linux CPU frequency scaling.

Reads and writes the cpufreq attributes under /sys/devices/system/cpu:
the scaling governor and the scaling minimum and maximum of each core.
Writes are validated against each core's hardware range and available
governors before they reach sysfs. Changing settings requires root.`,
		Examples: []cli.Example{
			{
				Description: "Show every core",
				Command:     "mdcr show",
			},
			{
				Description: "Cap cores 0-3 at 1.6 GHz",
				Command:     "sudo mdcr set --cores 0-3 --max 1.6GHz",
			},
			{
				Description: "Save the current settings, benchmark, then put them back",
				Command:     "sudo mdcr snapshot save before.cbor && sudo mdcr preset apply performance && ./bench; sudo mdcr snapshot restore before.cbor",
			},
		},
		Subcommands: []*cli.Command{
			showcmd.Command(),
			setcmd.Command(),
			presetcmd.Command(),
			snapshotcmd.Command(),
			watchcmd.Command(),
			doctorcmd.Command(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	var params cli.JSONOutput

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if done, err := params.EmitJSON(version.Current()); done {
				return err
			}
			fmt.Printf("mdcr %s\n", version.Full())
			return nil
		},
	}
}
