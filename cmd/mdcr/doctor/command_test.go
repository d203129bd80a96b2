// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/razorheadfx/mediocore/cmd/mdcr/cli"
	"github.com/razorheadfx/mediocore/cmd/mdcr/cli/doctor"
	"github.com/razorheadfx/mediocore/lib/config"
	"github.com/razorheadfx/mediocore/lib/testutil"
)

func statuses(results []doctor.Result) map[string]doctor.Status {
	byName := make(map[string]doctor.Status, len(results))
	for _, result := range results {
		byName[result.Name] = result.Status
	}
	return byName
}

func TestRunChecks_Healthy(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	root := t.TempDir()
	testutil.WriteCPUTree(t, root, testutil.DefaultCPU(0), testutil.DefaultCPU(1))

	results := runChecks(cli.GlobalParams{SysfsRoot: root}, true, nil)

	want := map[string]doctor.Status{
		"config":     doctor.StatusPass,
		"sysfs root": doctor.StatusPass,
		"discovery":  doctor.StatusPass,
		"writable":   doctor.StatusPass,
		"governors":  doctor.StatusPass,
		"privileges": doctor.StatusPass,
	}
	if diff := cmp.Diff(want, statuses(results)); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
	if results[2].Message != "2 cores (0-1)" {
		t.Errorf("discovery message = %q", results[2].Message)
	}
}

func TestRunChecks_Warnings(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	root := t.TempDir()
	other := testutil.DefaultCPU(1)
	other.Governor = "performance"
	testutil.WriteCPUTree(t, root, testutil.DefaultCPU(0), other)

	results := runChecks(cli.GlobalParams{SysfsRoot: root}, false, nil)
	got := statuses(results)

	if got["governors"] != doctor.StatusWarn {
		t.Errorf("governors = %s, want warn", got["governors"])
	}
	if got["privileges"] != doctor.StatusWarn {
		t.Errorf("privileges = %s, want warn", got["privileges"])
	}
	if doctor.AnyFailed(results) {
		t.Errorf("warnings alone should not fail: %+v", results)
	}
	for _, result := range results {
		if result.Name == "governors" && !strings.Contains(result.Message, "performance on 1, powersave on 0") {
			t.Errorf("governors message = %q", result.Message)
		}
	}
}

func TestRunChecks_MissingRoot(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	root := filepath.Join(t.TempDir(), "absent")

	results := runChecks(cli.GlobalParams{SysfsRoot: root}, true, nil)

	want := map[string]doctor.Status{
		"config":     doctor.StatusPass,
		"sysfs root": doctor.StatusFail,
		"discovery":  doctor.StatusSkip,
		"writable":   doctor.StatusSkip,
		"governors":  doctor.StatusSkip,
		"privileges": doctor.StatusPass,
	}
	if diff := cmp.Diff(want, statuses(results)); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
	if results[1].Hint == "" {
		t.Error("failed sysfs root check has no hint")
	}
}

func TestRunChecks_NoCores(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	root := t.TempDir()
	testutil.Mkdir(t, root, "cpufreq")

	got := statuses(runChecks(cli.GlobalParams{SysfsRoot: root}, true, nil))
	if got["discovery"] != doctor.StatusFail {
		t.Errorf("discovery = %s, want fail", got["discovery"])
	}
	if got["writable"] != doctor.StatusSkip {
		t.Errorf("writable = %s, want skip", got["writable"])
	}
}

func TestRunChecks_BrokenConfig(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "mediocore.yaml")
	testutil.WriteFile(t, directory, "mediocore.yaml", "sysfs_root: [\n")
	t.Setenv(config.EnvironmentVariable, "")

	results := runChecks(cli.GlobalParams{ConfigPath: path}, true, nil)
	got := statuses(results)
	if got["config"] != doctor.StatusFail {
		t.Errorf("config = %s, want fail", got["config"])
	}
	if got["discovery"] != doctor.StatusSkip {
		t.Errorf("discovery = %s, want skip", got["discovery"])
	}
}

func TestCommand_JSON(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	root := t.TempDir()
	testutil.WriteCPUTree(t, root, testutil.DefaultCPU(0))

	var err error
	output := testutil.CaptureStdout(t, func() {
		err = Command().Execute(context.Background(), []string{"--sysfs-root", root, "--json"})
	})
	if err != nil {
		t.Fatalf("doctor --json: %v", err)
	}
	var result doctor.JSONOutput
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding: %v\n%s", err, output)
	}
	if !result.OK || len(result.Checks) != 6 {
		t.Errorf("result = %+v", result)
	}
}

func TestCommand_FailureExitCode(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	root := filepath.Join(t.TempDir(), "absent")

	var err error
	output := testutil.CaptureStdout(t, func() {
		err = Command().Execute(context.Background(), []string{"--sysfs-root", root})
	})
	if cli.ExitCode(err) != cli.ExitFailure {
		t.Errorf("exit code = %d (err %v), want %d", cli.ExitCode(err), err, cli.ExitFailure)
	}
	if !strings.Contains(output, "Some checks failed.") {
		t.Errorf("output missing failure summary:\n%s", output)
	}
}
