// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/razorheadfx/mediocore/lib/config"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
	"github.com/razorheadfx/mediocore/lib/render"
)

// ApplyResult is the --json form of a batch outcome.
type ApplyResult struct {
	Applied []cpufreq.Change `json:"applied"`
	Error   string           `json:"error,omitempty"`
}

// PrintReport writes the changes a batch applied and returns the
// batch error, classified. A failed batch still prints what it changed:
// nothing is rolled back, so the operator needs to see the partial
// state.
func PrintReport(output *JSONOutput, color config.ColorMode, report cpufreq.Report, applyErr error, logger *slog.Logger) error {
	if applyErr != nil && len(report.Applied) > 0 {
		logger.Warn("batch stopped part way; earlier changes remain applied",
			"applied", len(report.Applied), "error", applyErr)
	}

	result := ApplyResult{Applied: report.Applied}
	if applyErr != nil {
		result.Error = applyErr.Error()
	}
	if result.Applied == nil {
		result.Applied = []cpufreq.Change{}
	}
	if done, err := output.EmitJSON(result); done {
		if err != nil {
			return err
		}
		return Classify(applyErr)
	}

	if len(report.Applied) == 0 {
		if applyErr == nil {
			fmt.Fprintln(os.Stdout, "Nothing applied: the plan covers none of the selected cores.")
		}
		return Classify(applyErr)
	}

	printer := render.NewPrinter(os.Stdout, render.Styled(string(color), os.Stdout), render.DefaultTheme)
	if err := printer.Changes(report.Applied); err != nil {
		return err
	}
	return Classify(applyErr)
}
