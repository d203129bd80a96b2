// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/razorheadfx/mediocore/lib/cpufreq"
)

// governorsWidth caps the available-governors column so a long list
// does not wrap the table on narrow terminals.
const governorsWidth = 40

// Styled reports whether output to file should be styled under mode
// ("auto", "always", or "never"). auto styles only terminals, and
// NO_COLOR disables auto styling.
func Styled(mode string, file *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Printer writes tables either styled or as plain text.
type Printer struct {
	out      io.Writer
	styled   bool
	theme    Theme
	renderer *lipgloss.Renderer
}

// NewPrinter returns a Printer writing to out. Styled printers force a
// 256-color profile: the caller already decided styling is wanted, and
// lipgloss would otherwise re-detect and drop colors when piped.
func NewPrinter(out io.Writer, styled bool, theme Theme) *Printer {
	printer := &Printer{out: out, styled: styled, theme: theme}
	if styled {
		printer.renderer = lipgloss.NewRenderer(out, termenv.WithProfile(termenv.ANSI256))
		printer.renderer.SetColorProfile(termenv.ANSI256)
	}
	return printer
}

// Cores prints one row per core.
func (p *Printer) Cores(cores []cpufreq.Settings) error {
	headers := []string{"CPU", "GOVERNOR", "SCALING MIN", "SCALING MAX", "HW MIN", "HW MAX", "AVAILABLE GOVERNORS"}
	rows := make([][]string, 0, len(cores))
	for _, core := range cores {
		rows = append(rows, []string{
			strconv.Itoa(core.Number),
			core.Governor,
			core.ScalingMin.String(),
			core.ScalingMax.String(),
			core.HardwareMin.String(),
			core.HardwareMax.String(),
			strings.Join(core.AvailableGovernors, " "),
		})
	}

	if !p.styled {
		return p.plain(headers, rows)
	}

	for _, row := range rows {
		row[6] = ansi.Truncate(row[6], governorsWidth, "…")
	}
	styles := func(row, column int) lipgloss.Style {
		style := p.renderer.NewStyle().Padding(0, 1).Foreground(p.theme.NormalText)
		if row == table.HeaderRow {
			return style.Bold(true).Foreground(p.theme.HeaderForeground)
		}
		core := cores[row]
		switch column {
		case 0:
			return style.Align(lipgloss.Right)
		case 1:
			return style.Foreground(p.theme.GovernorColor(core.Governor))
		case 2, 3:
			if core.ScalingMin == core.ScalingMax {
				return style.Foreground(p.theme.Pinned).Align(lipgloss.Right)
			}
			return style.Align(lipgloss.Right)
		case 4, 5:
			return style.Foreground(p.theme.FaintText).Align(lipgloss.Right)
		default:
			return style.Foreground(p.theme.FaintText)
		}
	}
	return p.styledTable(headers, rows, styles)
}

// Changes prints one row per applied change. Frequencies are shown
// with units.
func (p *Printer) Changes(changes []cpufreq.Change) error {
	headers := []string{"STEP", "CPU", "OLD", "NEW"}
	rows := make([][]string, 0, len(changes))
	for _, change := range changes {
		rows = append(rows, []string{
			change.Step.String(),
			strconv.Itoa(change.Core),
			changeValue(change.Step, change.Old),
			changeValue(change.Step, change.New),
		})
	}

	if !p.styled {
		return p.plain(headers, rows)
	}
	styles := func(row, column int) lipgloss.Style {
		style := p.renderer.NewStyle().Padding(0, 1).Foreground(p.theme.NormalText)
		switch {
		case row == table.HeaderRow:
			return style.Bold(true).Foreground(p.theme.HeaderForeground)
		case column == 2:
			return style.Foreground(p.theme.OldValue)
		case column == 3:
			return style.Foreground(p.theme.NewValue).Bold(true)
		default:
			return style
		}
	}
	return p.styledTable(headers, rows, styles)
}

// Presets prints one row per preset with the targets its plan sets.
func (p *Printer) Presets(presets []cpufreq.Preset) error {
	headers := []string{"NAME", "GOVERNOR", "MIN", "MAX", "CORES", "DESCRIPTION"}
	rows := make([][]string, 0, len(presets))
	for _, preset := range presets {
		cores := "all"
		if len(preset.Plan.Cores) > 0 {
			cores = cpufreq.FormatCoreList(preset.Plan.Cores)
		}
		rows = append(rows, []string{
			preset.Name,
			preset.Plan.Governor.String(),
			preset.Plan.Min.String(),
			preset.Plan.Max.String(),
			cores,
			preset.Description,
		})
	}

	if !p.styled {
		return p.plain(headers, rows)
	}
	styles := func(row, column int) lipgloss.Style {
		style := p.renderer.NewStyle().Padding(0, 1).Foreground(p.theme.NormalText)
		switch {
		case row == table.HeaderRow:
			return style.Bold(true).Foreground(p.theme.HeaderForeground)
		case column == 0:
			return style.Bold(true)
		case column == 1:
			return style.Foreground(p.theme.GovernorColor(rows[row][1]))
		case rows[row][column] == "unchanged":
			return style.Foreground(p.theme.FaintText)
		case column == 5:
			return style.Foreground(p.theme.FaintText)
		default:
			return style
		}
	}
	return p.styledTable(headers, rows, styles)
}

// changeValue formats a recorded attribute value for display.
func changeValue(step cpufreq.Step, value string) string {
	if step == cpufreq.StepGovernor {
		return value
	}
	frequency, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return value
	}
	return cpufreq.Frequency(frequency).String()
}

func (p *Printer) styledTable(headers []string, rows [][]string, styles table.StyleFunc) error {
	rendered := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.renderer.NewStyle().Foreground(p.theme.BorderColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(styles).
		String()
	_, err := fmt.Fprintln(p.out, rendered)
	return err
}

func (p *Printer) plain(headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}
