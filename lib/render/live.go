// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/razorheadfx/mediocore/lib/cpufreq"
)

// barWidth is the cell count of the position bar in live tables.
const barWidth = 20

// Sample is one core's settings plus the frequency it ran at when
// sampled. A zero Current means the driver does not report one.
type Sample struct {
	cpufreq.Settings
	Current cpufreq.Frequency `json:"current_khz,omitempty"`
}

// Live prints one row per sample with a bar placing the current
// frequency within the hardware range.
func (p *Printer) Live(samples []Sample) error {
	headers := []string{"CPU", "GOVERNOR", "CURRENT", "", "SCALING MIN", "SCALING MAX"}
	rows := make([][]string, 0, len(samples))
	for _, sample := range samples {
		current, bar := "-", ""
		if sample.Current != 0 {
			current = sample.Current.String()
			bar = PositionBar(sample.Current, sample.HardwareMin, sample.HardwareMax, barWidth)
		}
		rows = append(rows, []string{
			strconv.Itoa(sample.Number),
			sample.Governor,
			current,
			bar,
			sample.ScalingMin.String(),
			sample.ScalingMax.String(),
		})
	}

	if !p.styled {
		return p.plain(headers, rows)
	}
	styles := func(row, column int) lipgloss.Style {
		style := p.renderer.NewStyle().Padding(0, 1).Foreground(p.theme.NormalText)
		if row == table.HeaderRow {
			return style.Bold(true).Foreground(p.theme.HeaderForeground)
		}
		sample := samples[row]
		switch column {
		case 0:
			return style.Align(lipgloss.Right)
		case 1, 3:
			return style.Foreground(p.theme.GovernorColor(sample.Governor))
		case 2:
			return style.Bold(true).Align(lipgloss.Right)
		default:
			return style.Foreground(p.theme.FaintText).Align(lipgloss.Right)
		}
	}
	return p.styledTable(headers, rows, styles)
}

// PositionBar renders where current sits between low and high as
// width cells of filled and empty blocks. Values outside the range
// clamp to its ends. Any value above low fills at least one cell.
func PositionBar(current, low, high cpufreq.Frequency, width int) string {
	if width <= 0 {
		return ""
	}
	filled := width
	if high > low {
		switch {
		case current <= low:
			filled = 0
		case current < high:
			filled = max(1, int(uint64(current-low)*uint64(width)/uint64(high-low)))
		}
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
