// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of styled tables. All colors are ANSI
// 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Governor colors: governors that favor speed, favor power, or
	// scale dynamically between the two.
	GovernorPerformance lipgloss.Color
	GovernorPowersave   lipgloss.Color
	GovernorDynamic     lipgloss.Color

	// Pinned marks a scaling range collapsed to a single frequency.
	Pinned lipgloss.Color

	// Change report colors.
	OldValue lipgloss.Color
	NewValue lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
}

// GovernorColor returns the color for a governor name. Unknown
// governors use NormalText.
func (theme Theme) GovernorColor(governor string) lipgloss.Color {
	switch governor {
	case "performance":
		return theme.GovernorPerformance
	case "powersave":
		return theme.GovernorPowersave
	case "schedutil", "ondemand", "conservative":
		return theme.GovernorDynamic
	default:
		return theme.NormalText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	GovernorPerformance: lipgloss.Color("208"), // orange
	GovernorPowersave:   lipgloss.Color("114"), // green
	GovernorDynamic:     lipgloss.Color("75"),  // blue

	Pinned: lipgloss.Color("220"), // amber

	OldValue: lipgloss.Color("245"), // gray
	NewValue: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
}
