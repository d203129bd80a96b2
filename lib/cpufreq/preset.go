// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

// Preset is a named plan. Presets carry no core selection; the caller
// sets Plan.Cores before applying.
type Preset struct {
	Name        string
	Description string
	Plan        Plan
}

// Built-in preset names.
const (
	PresetPerformance = "performance"
	PresetPowersave   = "powersave"
	PresetFullRange   = "full-range"
)

// BuiltinPresets returns the presets every installation has, in display
// order. A preset is applied like any other plan, so it is not atomic
// across cores: a core that rejects the governor stops the batch with
// earlier cores already switched.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			Name:        PresetPerformance,
			Description: "performance governor, scaling max raised to the hardware max",
			Plan: Plan{
				Governor: SetGovernorTo("performance"),
				Max:      HardwareMaximum(),
			},
		},
		{
			Name:        PresetPowersave,
			Description: "powersave governor, scaling range pinned to the hardware min",
			Plan: Plan{
				Governor: SetGovernorTo("powersave"),
				Min:      HardwareMinimum(),
				Max:      HardwareMinimum(),
			},
		},
		{
			Name:        PresetFullRange,
			Description: "scaling range opened to the full hardware range, governor unchanged",
			Plan: Plan{
				Min: HardwareMinimum(),
				Max: HardwareMaximum(),
			},
		},
	}
}

// LookupPreset finds a built-in preset by name.
func LookupPreset(name string) (Preset, bool) {
	for _, preset := range BuiltinPresets() {
		if preset.Name == name {
			return preset, true
		}
	}
	return Preset{}, false
}
