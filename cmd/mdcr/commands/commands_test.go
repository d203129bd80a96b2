// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	"github.com/razorheadfx/mediocore/lib/testutil"
	"github.com/razorheadfx/mediocore/lib/version"
)

func walk(command *cli.Command, path string, visit func(*cli.Command, string)) {
	visit(command, path)
	for _, sub := range command.Subcommands {
		walk(sub, path+" "+sub.Name, visit)
	}
}

func TestRoot_TreeIsComplete(t *testing.T) {
	seen := make(map[string]bool)
	walk(Root(), "mdcr", func(command *cli.Command, path string) {
		if seen[path] {
			t.Errorf("%s: duplicate command path", path)
		}
		seen[path] = true
		if path == "mdcr" {
			return
		}
		if command.Summary == "" {
			t.Errorf("%s: no summary", path)
		}
		if len(command.Subcommands) == 0 && command.Run == nil {
			t.Errorf("%s: leaf command has no Run", path)
		}
		if command.Params != nil {
			// Binding panics on malformed tags; build every flag set once.
			cli.FlagsFromParams(command.Name, command.Params())
		}
	})

	for _, path := range []string{
		"mdcr show",
		"mdcr set",
		"mdcr preset list",
		"mdcr preset apply",
		"mdcr snapshot save",
		"mdcr snapshot restore",
		"mdcr snapshot inspect",
		"mdcr watch",
		"mdcr doctor",
		"mdcr version",
	} {
		if !seen[path] {
			t.Errorf("command %q missing from the tree", path)
		}
	}
}

func TestRoot_UnknownCommandSuggests(t *testing.T) {
	err := Root().Execute(context.Background(), []string{"shwo"})
	if err == nil {
		t.Fatal("expected an error for an unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "show"`) {
		t.Errorf("error = %v, want a suggestion for show", err)
	}
	if cli.ExitCode(err) != cli.ExitUsage {
		t.Errorf("exit code = %d, want %d", cli.ExitCode(err), cli.ExitUsage)
	}
}

func TestVersion(t *testing.T) {
	var err error
	output := testutil.CaptureStdout(t, func() {
		err = Root().Execute(context.Background(), []string{"version"})
	})
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(output, "mdcr "+version.Version) {
		t.Errorf("output = %q", output)
	}

	output = testutil.CaptureStdout(t, func() {
		err = Root().Execute(context.Background(), []string{"version", "--json"})
	})
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var details version.Details
	if err := json.Unmarshal([]byte(output), &details); err != nil {
		t.Fatalf("decoding: %v\n%s", err, output)
	}
	if details.Version != version.Version || details.GoVersion == "" {
		t.Errorf("details = %+v", details)
	}
}
