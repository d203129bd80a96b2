// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	"github.com/razorheadfx/mediocore/lib/clock"
	"github.com/razorheadfx/mediocore/lib/codec"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
	"github.com/razorheadfx/mediocore/lib/render"
	"github.com/razorheadfx/mediocore/lib/snapshot"
)

// Command returns the "snapshot" command group.
func Command() *cli.Command {
	return command(clock.Real())
}

func command(clk clock.Clock) *cli.Command {
	return &cli.Command{
		Name:    "snapshot",
		Summary: "Save and restore per-core settings",
		Description: `Save the governor and scaling range of every core to a file, and
restore them later. Files are CBOR by default; JSON snapshots may be
edited by hand and may contain comments.

Relative file names resolve against snapshot.directory from the
configuration file, if set.`,
		Subcommands: []*cli.Command{
			saveCommand(clk),
			restoreCommand(),
			inspectCommand(),
		},
	}
}

type saveParams struct {
	cli.GlobalParams
	Format string `flag:"format" desc:"file encoding (default: from config)" choices:"cbor,json"`
}

func saveCommand(clk clock.Clock) *cli.Command {
	var params saveParams

	return &cli.Command{
		Name:    "save",
		Summary: "Save the live settings to a file",
		Description: `Capture every core's governor, scaling range, and hardware range and
write them to FILE. The write is atomic: FILE is either the complete
new snapshot or untouched. A FILE ending in .zst is zstd-compressed;
restore and inspect recognize compressed files by content.`,
		Usage: "mdcr snapshot save FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Save before a benchmark",
				Command:     "mdcr snapshot save before-bench.cbor",
			},
			{
				Description: "Save as editable JSON",
				Command:     "mdcr snapshot save tuned.json --format json",
			},
			{
				Description: "Save compressed, for hosts with many cores",
				Command:     "mdcr snapshot save before.cbor.zst",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one file name, got %d arguments", len(args))
			}
			cfg, cores, err := params.Discover(logger)
			if err != nil {
				return err
			}

			format := snapshot.Format(cfg.Snapshot.Format)
			if params.Format != "" {
				format = snapshot.Format(params.Format)
			}
			path := cfg.SnapshotPath(args[0])
			saved := snapshot.Capture(cores, cfg.SysfsRoot, clk)
			if err := snapshot.Save(path, saved, format); err != nil {
				return cli.Classify(err)
			}

			logger.Info("snapshot saved", "path", path, "format", string(format), "cores", len(saved.Cores))
			fmt.Fprintf(os.Stdout, "Saved %d cores (%s) to %s\n",
				len(saved.Cores), cpufreq.FormatCoreList(saved.Numbers()), path)
			return nil
		},
	}
}

type restoreParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Cores string `flag:"cores" desc:"CPU list such as 0,2-3 (default: every saved core)"`
}

func restoreCommand() *cli.Command {
	var params restoreParams

	return &cli.Command{
		Name:    "restore",
		Summary: "Restore settings from a file",
		Description: `Restore the governor and scaling range saved in FILE.

The restore runs in two batches so that every intermediate state stays
valid: first each governor is restored and each scaling maximum is
raised to at least its saved value, then the saved minimums and
maximums are written. Every core must exist with the same hardware
range it had when the snapshot was taken; this is checked before
anything is written.`,
		Usage: "mdcr snapshot restore FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Undo a benchmark's tuning",
				Command:     "sudo mdcr snapshot restore before-bench.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one file name, got %d arguments", len(args))
			}
			selection, err := cli.ParseCores(params.Cores)
			if err != nil {
				return err
			}
			cfg, cores, err := params.Discover(logger)
			if err != nil {
				return err
			}
			path := cfg.SnapshotPath(args[0])
			saved, err := snapshot.Load(path)
			if err != nil {
				return cli.Classify(err)
			}

			logger = logger.With("path", path, "taken_at", saved.TakenAt)
			report, restoreErr := snapshot.Restore(cores, saved, selection, logger)
			if restoreErr == nil {
				logger.Info("snapshot restored", "changes", len(report.Applied))
			}
			return cli.PrintReport(&params.JSONOutput, cfg.Color, report, restoreErr, logger)
		},
	}
}

type inspectParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Diagnostic bool `flag:"diagnostic" desc:"print CBOR files in diagnostic notation"`
}

func inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Print the contents of a snapshot file",
		Usage:   "mdcr snapshot inspect FILE [flags]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one file name, got %d arguments", len(args))
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			path := cfg.SnapshotPath(args[0])

			if params.Diagnostic {
				data, err := os.ReadFile(path)
				if err != nil {
					return cli.Classify(err)
				}
				if data, err = snapshot.Decompress(data); err != nil {
					return cli.Validation("%s: %w", path, err)
				}
				if snapshot.DetectFormat(data) != snapshot.FormatCBOR {
					return cli.Validation("%s is not a CBOR snapshot; --diagnostic applies to CBOR only", path)
				}
				notation, err := codec.Diagnose(data)
				if err != nil {
					return cli.Validation("%s: %w", path, err)
				}
				fmt.Fprintln(os.Stdout, notation)
				return nil
			}

			saved, err := snapshot.Load(path)
			if err != nil {
				return cli.Classify(err)
			}
			if done, err := params.EmitJSON(saved); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Taken %s (%s) from %s\n\n",
				humanize.Time(saved.TakenAt), saved.TakenAt.Format("2006-01-02 15:04:05 MST"), saved.Root)
			printer := render.NewPrinter(os.Stdout, render.Styled(string(cfg.Color), os.Stdout), render.DefaultTheme)
			return printer.Cores(saved.Cores)
		},
	}
}
