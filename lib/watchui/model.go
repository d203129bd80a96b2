// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package watchui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/razorheadfx/mediocore/lib/clock"
	"github.com/razorheadfx/mediocore/lib/render"
)

// Sampler reads the current state of the watched cores.
type Sampler func() ([]render.Sample, error)

// SortKey orders the rows of the watch table.
type SortKey int

const (
	SortNumber SortKey = iota
	SortCurrent
	SortGovernor
)

func (s SortKey) String() string {
	switch s {
	case SortCurrent:
		return "current"
	case SortGovernor:
		return "governor"
	default:
		return "number"
	}
}

func (s SortKey) next() SortKey {
	return (s + 1) % 3
}

// Config configures a watch model. Sampler and Interval are required.
// Zero values of the other fields select the real clock, the default
// theme, and the default key map.
type Config struct {
	Sampler  Sampler
	Interval time.Duration
	Root     string
	Clock    clock.Clock
	Theme    render.Theme
	Keys     KeyMap
}

// sampleMsg carries the result of one Sampler call. generation ties
// the result to the refresh loop that requested it.
type sampleMsg struct {
	generation int
	samples    []render.Sample
	err        error
	at         time.Time
}

// tickMsg asks for the next refresh of a refresh loop.
type tickMsg struct {
	generation int
}

// Model is the bubbletea model of the watch view.
type Model struct {
	config Config
	help   help.Model

	samples   []render.Sample
	err       error
	refreshed time.Time
	sortBy    SortKey
	paused    bool

	// generation increments whenever the refresh loop restarts, so
	// ticks from an abandoned loop are dropped instead of doubling
	// the refresh rate.
	generation int
}

// New returns a model that refreshes every config.Interval.
func New(config Config) Model {
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Theme == (render.Theme{}) {
		config.Theme = render.DefaultTheme
	}
	if len(config.Keys.Quit.Keys()) == 0 {
		config.Keys = DefaultKeyMap
	}
	return Model{config: config, help: help.New()}
}

// Init takes the first sample immediately.
func (m Model) Init() tea.Cmd {
	return m.sample()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sampleMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.samples = msg.samples
			m.refreshed = msg.at
			m.sortSamples()
		}
		if m.paused || msg.generation != m.generation {
			return m, nil
		}
		return m, m.tick()

	case tickMsg:
		if m.paused || msg.generation != m.generation {
			return m, nil
		}
		return m, m.sample()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.config.Keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Pause):
		m.paused = !m.paused
		if m.paused {
			return m, nil
		}
		m.generation++
		return m, m.sample()
	case key.Matches(msg, keys.Refresh):
		m.generation++
		return m, m.sample()
	case key.Matches(msg, keys.Sort):
		m.sortBy = m.sortBy.next()
		m.sortSamples()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) sample() tea.Cmd {
	sampler, now, generation := m.config.Sampler, m.config.Clock.Now, m.generation
	return func() tea.Msg {
		samples, err := sampler()
		return sampleMsg{generation: generation, samples: samples, err: err, at: now()}
	}
}

func (m Model) tick() tea.Cmd {
	generation := m.generation
	return tea.Tick(m.config.Interval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

// sortSamples orders rows by the active key. Ties keep ascending core
// number; frequencies sort highest first.
func (m *Model) sortSamples() {
	slices.SortStableFunc(m.samples, func(a, b render.Sample) int {
		switch m.sortBy {
		case SortCurrent:
			if order := cmp.Compare(b.Current, a.Current); order != 0 {
				return order
			}
		case SortGovernor:
			if order := cmp.Compare(a.Governor, b.Governor); order != 0 {
				return order
			}
		}
		return cmp.Compare(a.Number, b.Number)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	theme := m.config.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	var view strings.Builder
	title := fmt.Sprintf("mdcr watch  %s  every %s  sorted by %s", m.config.Root, m.config.Interval, m.sortBy)
	view.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render(title))
	if m.paused {
		view.WriteString(lipgloss.NewStyle().Foreground(theme.Pinned).Render("  paused"))
	}
	view.WriteString("\n")

	if len(m.samples) > 0 {
		if err := render.NewPrinter(&view, true, theme).Live(m.samples); err != nil {
			fmt.Fprintf(&view, "rendering: %v\n", err)
		}
	} else if m.err == nil {
		view.WriteString(faint.Render("sampling…") + "\n")
	}

	if m.err != nil {
		view.WriteString(lipgloss.NewStyle().Foreground(theme.GovernorPerformance).Render("error: "+m.err.Error()) + "\n")
	}
	if !m.refreshed.IsZero() {
		view.WriteString(faint.Render("updated "+m.refreshed.Format("15:04:05")) + "\n")
	}
	view.WriteString(m.help.View(m.config.Keys))
	return view.String()
}
