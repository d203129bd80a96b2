// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
)

// PrintChecklist prints check results as a human-readable checklist.
// Hints for failed checks are collected into a section at the bottom.
// Returns a [cli.ExitError] with code 1 when any check failed.
func PrintChecklist(w io.Writer, results []Result) error {
	var hints []string

	for _, result := range results {
		prefix := strings.ToUpper(string(result.Status))
		fmt.Fprintf(w, "[%-4s]  %-24s  %s\n", prefix, result.Name, result.Message)
		if result.Status == StatusFail && result.Hint != "" {
			hints = append(hints, result.Hint)
		}
	}

	fmt.Fprintln(w)

	if !AnyFailed(results) {
		fmt.Fprintln(w, "All checks passed.")
		return nil
	}

	fmt.Fprintln(w, "Some checks failed.")
	if len(hints) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "To resolve:")
		for _, hint := range hints {
			fmt.Fprintf(w, "  - %s\n", hint)
		}
	}
	return &cli.ExitError{Code: cli.ExitFailure}
}
