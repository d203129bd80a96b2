// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import (
	"testing"

	"github.com/razorheadfx/mediocore/lib/testutil"
)

func TestBuiltinPresets(t *testing.T) {
	tests := []struct {
		name     string
		governor string
		min, max Frequency
	}{
		{PresetPerformance, "performance", 850000, 2500000},
		{PresetPowersave, "powersave", 800000, 800000},
		{PresetFullRange, "powersave", 800000, 2500000},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			preset, ok := LookupPreset(test.name)
			if !ok {
				t.Fatalf("LookupPreset(%q) not found", test.name)
			}
			cores, _, _ := newTestCores(t, 2)
			if _, err := Apply(cores, preset.Plan, nil); err != nil {
				t.Fatalf("Apply(%s): %v", test.name, err)
			}
			for _, core := range cores {
				if core.Governor() != test.governor {
					t.Errorf("cpu%d governor = %q, want %q", core.Number(), core.Governor(), test.governor)
				}
				if core.ScalingMin() != test.min || core.ScalingMax() != test.max {
					t.Errorf("cpu%d scaling range = [%d, %d], want [%d, %d]",
						core.Number(), core.ScalingMin(), core.ScalingMax(), test.min, test.max)
				}
			}
		})
	}
}

func TestPowersaveFromPerformance(t *testing.T) {
	// Pinning to the hardware minimum from a wide-open range must pass
	// through valid states: min drops first, then max follows.
	fixture := testutil.DefaultCPU(0)
	fixture.Governor = "performance"
	fixture.ScalingMin = 2000000
	fixture.ScalingMax = 2500000
	core, _ := newTestCore(t, fixture, nil)

	preset, _ := LookupPreset(PresetPowersave)
	if _, err := Apply([]*Core{core}, preset.Plan, nil); err != nil {
		t.Fatalf("Apply(powersave): %v", err)
	}
	if core.ScalingMin() != 800000 || core.ScalingMax() != 800000 {
		t.Errorf("scaling range = [%d, %d], want [800000, 800000]", core.ScalingMin(), core.ScalingMax())
	}
}

func TestLookupPreset_Unknown(t *testing.T) {
	if _, ok := LookupPreset("turbo"); ok {
		t.Error("LookupPreset(turbo) found a preset")
	}
}

func TestTargetStrings(t *testing.T) {
	tests := []struct {
		target interface{ String() string }
		want   string
	}{
		{GovernorTarget{}, "unchanged"},
		{SetGovernorTo("schedutil"), "schedutil"},
		{GovernorPerCore(map[int]string{0: "powersave"}), "per-core"},
		{FrequencyTarget{}, "unchanged"},
		{HardwareMinimum(), "hwmin"},
		{HardwareMaximum(), "hwmax"},
		{Exactly(1600000), "1.6 GHz"},
		{FrequencyPerCore(map[int]Frequency{0: 800000}), "per-core"},
	}
	for _, test := range tests {
		if got := test.target.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}
