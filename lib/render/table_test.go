// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/razorheadfx/mediocore/lib/cpufreq"
)

var testCores = []cpufreq.Settings{
	{
		Number: 0, HardwareMin: 800000, HardwareMax: 2500000,
		ScalingMin: 850000, ScalingMax: 900000,
		Governor: "powersave", AvailableGovernors: []string{"performance", "powersave"},
	},
	{
		Number: 1, HardwareMin: 800000, HardwareMax: 2500000,
		ScalingMin: 2500000, ScalingMax: 2500000,
		Governor: "performance", AvailableGovernors: []string{"performance", "powersave"},
	},
}

func TestCores_Plain(t *testing.T) {
	var buffer bytes.Buffer
	if err := NewPrinter(&buffer, false, DefaultTheme).Cores(testCores); err != nil {
		t.Fatalf("Cores: %v", err)
	}
	output := buffer.String()
	if strings.Contains(output, "\x1b[") {
		t.Errorf("plain output contains escape sequences:\n%s", output)
	}
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), output)
	}
	if fields := strings.Fields(lines[0]); fields[0] != "CPU" || fields[1] != "GOVERNOR" {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"0", "powersave", "850 MHz", "900 MHz", "800 MHz", "2.5 GHz", "performance powersave"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
	if !strings.HasPrefix(lines[2], "1 ") {
		t.Errorf("second row = %q, want cpu1", lines[2])
	}
}

func TestCores_Styled(t *testing.T) {
	var buffer bytes.Buffer
	if err := NewPrinter(&buffer, true, DefaultTheme).Cores(testCores); err != nil {
		t.Fatalf("Cores: %v", err)
	}
	output := buffer.String()
	if !strings.Contains(output, "\x1b[") {
		t.Errorf("styled output has no escape sequences:\n%s", output)
	}
	plain := ansi.Strip(output)
	for _, want := range []string{"GOVERNOR", "powersave", "2.5 GHz", "╭"} {
		if !strings.Contains(plain, want) {
			t.Errorf("styled output missing %q:\n%s", want, plain)
		}
	}
}

func TestCores_StyledTruncatesGovernors(t *testing.T) {
	wide := testCores[0]
	wide.AvailableGovernors = []string{
		"conservative", "ondemand", "userspace", "powersave", "performance", "schedutil",
	}
	var buffer bytes.Buffer
	if err := NewPrinter(&buffer, true, DefaultTheme).Cores([]cpufreq.Settings{wide}); err != nil {
		t.Fatalf("Cores: %v", err)
	}
	plain := ansi.Strip(buffer.String())
	if strings.Contains(plain, "schedutil") {
		t.Errorf("governor list not truncated:\n%s", plain)
	}
	if !strings.Contains(plain, "…") {
		t.Errorf("truncated list has no ellipsis:\n%s", plain)
	}
}

func TestChanges_Plain(t *testing.T) {
	changes := []cpufreq.Change{
		{Step: cpufreq.StepGovernor, Core: 0, Old: "powersave", New: "performance"},
		{Step: cpufreq.StepScalingMax, Core: 0, Old: "900000", New: "2500000"},
	}
	var buffer bytes.Buffer
	if err := NewPrinter(&buffer, false, DefaultTheme).Changes(changes); err != nil {
		t.Fatalf("Changes: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buffer.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buffer.String())
	}
	if fields := strings.Fields(lines[1]); fields[0] != "governor" || fields[2] != "powersave" || fields[3] != "performance" {
		t.Errorf("governor row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "900 MHz") || !strings.Contains(lines[2], "2.5 GHz") {
		t.Errorf("max row = %q, want formatted frequencies", lines[2])
	}
}

func TestStyled(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	if !Styled("always", file) {
		t.Error("Styled(always, file) = false")
	}
	if Styled("never", file) {
		t.Error("Styled(never, file) = true")
	}
	if Styled("auto", file) {
		t.Error("Styled(auto, regular file) = true")
	}
}

func TestGovernorColor(t *testing.T) {
	theme := DefaultTheme
	if theme.GovernorColor("performance") != theme.GovernorPerformance {
		t.Error("performance not mapped")
	}
	if theme.GovernorColor("schedutil") != theme.GovernorDynamic {
		t.Error("schedutil not mapped")
	}
	if theme.GovernorColor("userspace") != theme.NormalText {
		t.Error("unknown governor should use NormalText")
	}
}

func TestPresets_Plain(t *testing.T) {
	presets := append(cpufreq.BuiltinPresets(), cpufreq.Preset{
		Name:        "quiet",
		Description: "low clocks on the first cores",
		Plan:        cpufreq.Plan{Cores: []int{0, 1, 2, 3}, Max: cpufreq.Exactly(1200000)},
	})
	var buffer bytes.Buffer
	if err := NewPrinter(&buffer, false, DefaultTheme).Presets(presets); err != nil {
		t.Fatalf("Presets: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buffer.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), buffer.String())
	}
	if fields := strings.Fields(lines[1]); fields[0] != "performance" || fields[1] != "performance" || fields[2] != "unchanged" || fields[3] != "hwmax" || fields[4] != "all" {
		t.Errorf("performance row = %q", lines[1])
	}
	if fields := strings.Fields(lines[4]); fields[0] != "quiet" || fields[1] != "unchanged" || fields[3] != "1.2" || fields[5] != "0-3" {
		t.Errorf("profile row = %q", lines[4])
	}
}
