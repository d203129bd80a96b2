// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "mdcr",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "show",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "show"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"show"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "show" {
		t.Errorf("dispatched to %q, want %q", called, "show")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "mdcr",
		Subcommands: []*Command{
			{
				Name: "preset",
				Subcommands: []*Command{
					{
						Name: "apply",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "preset apply"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"preset", "apply", "powersave"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "preset apply" {
		t.Errorf("dispatched to %q, want %q", called, "preset apply")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "powersave" {
		t.Errorf("args = %v, want [powersave]", receivedArgs)
	}
}

type testParams struct {
	GlobalParams
	JSONOutput
	Cores string `flag:"cores" desc:"CPU list"`
	Sort  string `flag:"sort" desc:"sort key" default:"number" choices:"number,governor"`
}

func TestCommand_Execute_ParamsAreBound(t *testing.T) {
	var params testParams
	var target string

	command := &Command{
		Name:   "show",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			if !logger.Enabled(context.Background(), slog.LevelDebug) {
				t.Error("--verbose did not enable debug logging")
			}
			return nil
		},
	}

	args := []string{"--cores", "0-3", "-v", "--json", "--sort", "governor", "--sysfs-root", "/tmp/cpu", "extra"}
	if err := command.Execute(context.Background(), args); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Cores != "0-3" || !params.OutputJSON || params.Sort != "governor" || params.SysfsRoot != "/tmp/cpu" {
		t.Errorf("params = %+v", params)
	}
	if target != "extra" {
		t.Errorf("positional = %q, want extra", target)
	}
}

func TestCommand_Execute_DefaultLevelIsInfo(t *testing.T) {
	var params testParams
	command := &Command{
		Name:   "show",
		Params: func() any { return &params },
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			if logger.Enabled(context.Background(), slog.LevelDebug) {
				t.Error("debug logging enabled without --verbose")
			}
			return nil
		},
	}
	if err := command.Execute(context.Background(), nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Sort != "number" {
		t.Errorf("Sort default = %q, want number", params.Sort)
	}
}

func TestCommand_Execute_RejectsInvalidChoice(t *testing.T) {
	var params testParams
	command := &Command{
		Name:   "show",
		Params: func() any { return &params },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--sort", "speed"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for invalid choice")
	}
	if !strings.Contains(err.Error(), "number, governor") {
		t.Errorf("error = %q, should list the choices", err)
	}
	if ExitCode(err) != ExitUsage {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitUsage)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	var params testParams
	command := &Command{
		Name:   "show",
		Params: func() any { return &params },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--coers", "1"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --cores") {
		t.Errorf("error = %q, want suggestion for '--cores'", errStr)
	}
	if !strings.Contains(errStr, "coers") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
	var toolError *ToolError
	if !errors.As(err, &toolError) || toolError.Category != CategoryValidation {
		t.Errorf("error = %#v, want a validation ToolError", err)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	var params testParams
	command := &Command{
		Name:   "show",
		Params: func() any { return &params },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "mdcr",
		Subcommands: []*Command{
			{Name: "show"},
			{Name: "snapshot"},
			{Name: "version"},
		},
	}

	err := root.Execute(context.Background(), []string{"snapshto"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"snapshot\"") {
		t.Errorf("error = %q, want suggestion for 'snapshot'", err.Error())
	}
	if ExitCode(err) != ExitUsage {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitUsage)
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "mdcr",
		Subcommands: []*Command{
			{Name: "show"},
			{Name: "preset"},
		},
	}

	err := root.Execute(context.Background(), []string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "mdcr",
				Summary: "CPU frequency scaling control",
				Subcommands: []*Command{
					{Name: "show", Summary: "Show per-core settings"},
				},
			}

			if err := root.Execute(context.Background(), []string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_HelpAfterFlags(t *testing.T) {
	var params testParams
	ran := false
	command := &Command{
		Name:   "show",
		Params: func() any { return &params },
		Run: func(context.Context, []string, *slog.Logger) error {
			ran = true
			return nil
		},
	}
	if err := command.Execute(context.Background(), []string{"--cores", "1", "--help"}); err != nil {
		t.Errorf("Execute() error: %v", err)
	}
	if ran {
		t.Error("Run called for --help")
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "mdcr",
		Subcommands: []*Command{
			{Name: "show", Summary: "Show per-core settings"},
		},
	}

	err := root.Execute(context.Background(), []string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "mdcr",
		Description: "Inspect and adjust CPU frequency scaling.",
		Subcommands: []*Command{
			{Name: "show", Summary: "Show per-core settings"},
			{Name: "set", Summary: "Change governor and scaling range"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Pin every core to its lowest frequency",
				Command:     "mdcr preset apply powersave",
			},
			{
				Description: "Cap cores 0-3 at 1.6 GHz",
				Command:     "mdcr set --cores 0-3 --max 1.6GHz",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Inspect and adjust CPU frequency scaling.",
		"Usage:",
		"mdcr <command> [flags]",
		"Commands:",
		"show",
		"Show per-core settings",
		"Examples:",
		"mdcr preset apply powersave",
		"mdcr set --cores 0-3",
		"Run 'mdcr <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithParams(t *testing.T) {
	var params testParams
	command := &Command{
		Name:    "show",
		Summary: "Show per-core settings",
		Usage:   "mdcr show [flags]",
		Params:  func() any { return &params },
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"mdcr show [flags]",
		"Flags:",
		"--cores",
		"--sysfs-root",
		"-v, --verbose",
		"number|governor",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullNameAndPath(t *testing.T) {
	root := &Command{Name: "mdcr"}
	preset := &Command{Name: "preset", parent: root}
	apply := &Command{Name: "apply", parent: preset}

	if got := apply.fullName(); got != "mdcr preset apply" {
		t.Errorf("apply.fullName() = %q, want %q", got, "mdcr preset apply")
	}
	if got := apply.path(); got != "preset/apply" {
		t.Errorf("apply.path() = %q, want %q", got, "preset/apply")
	}
	if got := preset.path(); got != "preset" {
		t.Errorf("preset.path() = %q, want %q", got, "preset")
	}
}
