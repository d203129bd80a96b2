// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package preset

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	"github.com/razorheadfx/mediocore/lib/config"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
	"github.com/razorheadfx/mediocore/lib/testutil"
)

const profiles = `color: never
profiles:
  quiet:
    description: cap the first two cores
    governor: powersave
    max: 1.2GHz
    cores: 0-1
`

// setup writes a four-core tree and a config file with one profile,
// and points MEDIOCORE_CONFIG at it.
func setup(t *testing.T) string {
	t.Helper()
	directory := t.TempDir()
	root := filepath.Join(directory, "cpu")
	testutil.WriteCPUTree(t, root,
		testutil.DefaultCPU(0), testutil.DefaultCPU(1), testutil.DefaultCPU(2), testutil.DefaultCPU(3))
	testutil.WriteFile(t, directory, "mdcr.yaml", "sysfs_root: "+root+"\n"+profiles)
	t.Setenv(config.EnvironmentVariable, filepath.Join(directory, "mdcr.yaml"))
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var err error
	output := testutil.CaptureStdout(t, func() {
		err = Command().Execute(context.Background(), args)
	})
	return output, err
}

func TestList_JSON(t *testing.T) {
	setup(t)

	output, err := run(t, "list", "--json")
	if err != nil {
		t.Fatalf("preset list: %v", err)
	}
	var entries []presetEntry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("decoding: %v\n%s", err, output)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	if diff := cmp.Diff([]string{"performance", "powersave", "full-range", "quiet"}, names); diff != "" {
		t.Errorf("preset names mismatch (-want +got):\n%s", diff)
	}
	quiet := entries[3]
	want := presetEntry{
		Name: "quiet", Description: "cap the first two cores", Builtin: false,
		Governor: "powersave", Min: "unchanged", Max: "1.2 GHz", Cores: "0-1",
	}
	if diff := cmp.Diff(want, quiet); diff != "" {
		t.Errorf("profile entry mismatch (-want +got):\n%s", diff)
	}
	if !entries[0].Builtin {
		t.Error("performance not marked built-in")
	}
}

func TestList_Table(t *testing.T) {
	setup(t)

	output, err := run(t, "list")
	if err != nil {
		t.Fatalf("preset list: %v", err)
	}
	if !strings.HasPrefix(output, "NAME") || !strings.Contains(output, "quiet") {
		t.Errorf("unexpected table:\n%s", output)
	}
}

func TestApply_Builtin(t *testing.T) {
	root := setup(t)

	if _, err := run(t, "apply", "performance", "--cores", "2-3"); err != nil {
		t.Fatalf("preset apply: %v", err)
	}
	for cpu, want := range map[int]string{0: "powersave\n", 1: "powersave\n", 2: "performance", 3: "performance"} {
		if got := testutil.ReadAttribute(t, root, cpu, cpufreq.AttrGovernor); got != want {
			t.Errorf("cpu%d governor = %q, want %q", cpu, got, want)
		}
	}
	if got := testutil.ReadAttribute(t, root, 3, cpufreq.AttrScalingMax); got != "2500000" {
		t.Errorf("cpu3 scaling max = %q, want 2500000", got)
	}
}

func TestApply_Profile(t *testing.T) {
	root := setup(t)

	output, err := run(t, "apply", "quiet", "--json")
	if err != nil {
		t.Fatalf("preset apply: %v", err)
	}
	var result cli.ApplyResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding: %v\n%s", err, output)
	}
	// Governor and max on cpu0 and cpu1 only.
	if len(result.Applied) != 4 {
		t.Errorf("applied %d changes, want 4: %+v", len(result.Applied), result.Applied)
	}
	if got := testutil.ReadAttribute(t, root, 1, cpufreq.AttrScalingMax); got != "1200000" {
		t.Errorf("cpu1 scaling max = %q, want 1200000", got)
	}
	if got := testutil.ReadAttribute(t, root, 2, cpufreq.AttrScalingMax); got != "900000\n" {
		t.Errorf("cpu2 outside the profile was changed: %q", got)
	}
}

func TestApply_Errors(t *testing.T) {
	setup(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no name", []string{"apply"}, cli.ExitUsage},
		{"two names", []string{"apply", "performance", "powersave"}, cli.ExitUsage},
		{"unknown preset", []string{"apply", "turbo"}, cli.ExitFailure},
		{"bad cores", []string{"apply", "performance", "--cores", "a-b"}, cli.ExitUsage},
		{"unknown core", []string{"apply", "performance", "--cores", "9"}, cli.ExitFailure},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := run(t, test.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := cli.ExitCode(err); got != test.want {
				t.Errorf("exit = %d, want %d (error: %v)", got, test.want, err)
			}
		})
	}
}
