// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import "testing"

func TestFrequency_String(t *testing.T) {
	tests := []struct {
		frequency Frequency
		want      string
	}{
		{2500000, "2.5 GHz"},
		{800000, "800 MHz"},
		{1000000, "1 GHz"},
		{3, "3 kHz"},
	}
	for _, test := range tests {
		if got := test.frequency.String(); got != test.want {
			t.Errorf("Frequency(%d).String() = %q, want %q", uint32(test.frequency), got, test.want)
		}
	}
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input   string
		want    Frequency
		wantErr bool
	}{
		{"800000", 800000, false},
		{" 2500000 ", 2500000, false},
		{"2.5GHz", 2500000, false},
		{"2.5 GHz", 2500000, false},
		{"800MHz", 800000, false},
		{"1200000kHz", 1200000, false},
		{"", 0, true},
		{"fast", 0, true},
		{"2.5GB", 0, true},
		{"5000GHz", 0, true},
		{"99999999999", 0, true},
	}
	for _, test := range tests {
		got, err := ParseFrequency(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseFrequency(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseFrequency(%q) = %d, want %d", test.input, got, test.want)
		}
	}
}

func TestParseFrequencyTarget(t *testing.T) {
	core := &Core{settings: Settings{Number: 0, HardwareMin: 800000, HardwareMax: 2500000}}

	tests := []struct {
		input string
		want  Frequency
	}{
		{"hwmin", 800000},
		{"HWMAX", 2500000},
		{"1.2GHz", 1200000},
	}
	for _, test := range tests {
		target, err := ParseFrequencyTarget(test.input)
		if err != nil {
			t.Fatalf("ParseFrequencyTarget(%q): %v", test.input, err)
		}
		got, ok := target.resolve(core)
		if !ok || got != test.want {
			t.Errorf("ParseFrequencyTarget(%q) resolved to (%d, %v), want %d", test.input, got, ok, test.want)
		}
	}

	if _, err := ParseFrequencyTarget("lowest"); err == nil {
		t.Error("ParseFrequencyTarget(lowest) accepted")
	}
}
