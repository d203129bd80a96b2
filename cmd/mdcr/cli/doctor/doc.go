// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor provides the result types and output formatting for
// health-check commands.
//
// A check produces a [Result] with a [Status]. [PrintChecklist] renders
// results as an aligned checklist and returns a [cli.ExitError] when any
// check failed; [BuildJSON] produces the --json form. Checks themselves
// live with the command that runs them.
package doctor
