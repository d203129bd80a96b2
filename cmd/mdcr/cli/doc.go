// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for mdcr.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a parameter struct whose tagged
// fields become flags (see [BindFlags]), and a Run function. Commands are
// assembled into a tree in cmd/mdcr/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing,
// logger construction, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Every command that touches the host embeds [GlobalParams], which
// carries --config, --sysfs-root and --verbose. [GlobalParams.Load]
// resolves the configuration and discovers the cores, translating
// library errors into categorized [ToolError] values whose category
// selects the process exit status (see [ExitCode]).
package cli
