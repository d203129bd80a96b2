// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Step is one change type of a batch. Steps run in declaration order.
type Step int

const (
	StepGovernor Step = iota
	StepScalingMin
	StepScalingMax
)

func (s Step) String() string {
	switch s {
	case StepGovernor:
		return "governor"
	case StepScalingMin:
		return "scaling_min"
	case StepScalingMax:
		return "scaling_max"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// MarshalText encodes the step by name.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a step name written by MarshalText.
func (s *Step) UnmarshalText(text []byte) error {
	switch string(text) {
	case "governor":
		*s = StepGovernor
	case "scaling_min":
		*s = StepScalingMin
	case "scaling_max":
		*s = StepScalingMax
	default:
		return fmt.Errorf("unknown batch step %q", text)
	}
	return nil
}

// GovernorTarget is the governor a plan asks for. The zero value asks
// for no governor change.
type GovernorTarget struct {
	name    string
	perCore map[int]string
}

// SetGovernorTo targets the same governor on every selected core.
func SetGovernorTo(name string) GovernorTarget {
	return GovernorTarget{name: name}
}

// GovernorPerCore targets a governor per core number. Selected cores
// absent from the map are left alone.
func GovernorPerCore(governors map[int]string) GovernorTarget {
	return GovernorTarget{perCore: governors}
}

// IsZero reports whether the target requests no change.
func (t GovernorTarget) IsZero() bool {
	return t.name == "" && len(t.perCore) == 0
}

func (t GovernorTarget) String() string {
	switch {
	case t.perCore != nil:
		return "per-core"
	case t.name != "":
		return t.name
	default:
		return "unchanged"
	}
}

func (t GovernorTarget) resolve(core *Core) (string, bool) {
	if t.perCore != nil {
		name, ok := t.perCore[core.Number()]
		return name, ok
	}
	return t.name, t.name != ""
}

type frequencyKind int

const (
	frequencyNone frequencyKind = iota
	frequencyExact
	frequencyHardwareMin
	frequencyHardwareMax
	frequencyPerCore
)

// FrequencyTarget is the scaling bound a plan asks for. The zero value
// asks for no change.
type FrequencyTarget struct {
	kind    frequencyKind
	value   Frequency
	perCore map[int]Frequency
}

// Exactly targets the same frequency on every selected core.
func Exactly(f Frequency) FrequencyTarget {
	return FrequencyTarget{kind: frequencyExact, value: f}
}

// HardwareMinimum targets each core's own cpuinfo_min_freq.
func HardwareMinimum() FrequencyTarget {
	return FrequencyTarget{kind: frequencyHardwareMin}
}

// HardwareMaximum targets each core's own cpuinfo_max_freq.
func HardwareMaximum() FrequencyTarget {
	return FrequencyTarget{kind: frequencyHardwareMax}
}

// FrequencyPerCore targets a frequency per core number. Selected cores
// absent from the map are left alone.
func FrequencyPerCore(frequencies map[int]Frequency) FrequencyTarget {
	return FrequencyTarget{kind: frequencyPerCore, perCore: frequencies}
}

// ParseFrequencyTarget parses "hwmin", "hwmax", or anything
// [ParseFrequency] accepts.
func ParseFrequencyTarget(input string) (FrequencyTarget, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "hwmin":
		return HardwareMinimum(), nil
	case "hwmax":
		return HardwareMaximum(), nil
	}
	f, err := ParseFrequency(input)
	if err != nil {
		return FrequencyTarget{}, err
	}
	return Exactly(f), nil
}

// IsZero reports whether the target requests no change.
func (t FrequencyTarget) IsZero() bool {
	return t.kind == frequencyNone || (t.kind == frequencyPerCore && len(t.perCore) == 0)
}

func (t FrequencyTarget) String() string {
	switch t.kind {
	case frequencyExact:
		return t.value.String()
	case frequencyHardwareMin:
		return "hwmin"
	case frequencyHardwareMax:
		return "hwmax"
	case frequencyPerCore:
		return "per-core"
	default:
		return "unchanged"
	}
}

func (t FrequencyTarget) resolve(core *Core) (Frequency, bool) {
	switch t.kind {
	case frequencyExact:
		return t.value, true
	case frequencyHardwareMin:
		return core.HardwareMin(), true
	case frequencyHardwareMax:
		return core.HardwareMax(), true
	case frequencyPerCore:
		f, ok := t.perCore[core.Number()]
		return f, ok
	default:
		return 0, false
	}
}

// Plan is a set of pending changes for a batch. Cores selects core
// numbers; nil or empty selects every discovered core.
type Plan struct {
	Cores    []int
	Governor GovernorTarget
	Min      FrequencyTarget
	Max      FrequencyTarget
}

// IsEmpty reports whether the plan requests no change type at all.
func (p Plan) IsEmpty() bool {
	return p.Governor.IsZero() && p.Min.IsZero() && p.Max.IsZero()
}

// Change records one successful setter call in a batch. Old and New
// are attribute values: a governor name or decimal kHz.
type Change struct {
	Step Step   `json:"step"`
	Core int    `json:"core"`
	Old  string `json:"old"`
	New  string `json:"new"`
}

// Report lists the changes a batch applied, in execution order.
type Report struct {
	Applied []Change `json:"applied"`
}

type pendingChange struct {
	core      *Core
	governor  string
	frequency Frequency
}

// Apply runs plan against cores. Every governor change runs first, then
// every scaling minimum, then every scaling maximum; within a step,
// cores run in ascending number. This order keeps each intermediate
// state valid when a plan lowers the minimum and the maximum together.
//
// The first failing setter stops the batch. Changes already made stay
// in place and are listed in the returned report; the error is a
// *StepError naming the step and core. An empty plan fails with
// ErrNoChanges and a selection naming an undiscovered core fails with
// ErrUnknownCore, both before anything is written.
func Apply(cores []*Core, plan Plan, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var report Report

	if plan.IsEmpty() {
		return report, ErrNoChanges
	}
	selected, err := selectCores(cores, plan.Cores)
	if err != nil {
		return report, err
	}

	var steps [3][]pendingChange
	for _, core := range selected {
		if name, ok := plan.Governor.resolve(core); ok {
			steps[StepGovernor] = append(steps[StepGovernor], pendingChange{core: core, governor: name})
		}
		if f, ok := plan.Min.resolve(core); ok {
			steps[StepScalingMin] = append(steps[StepScalingMin], pendingChange{core: core, frequency: f})
		}
		if f, ok := plan.Max.resolve(core); ok {
			steps[StepScalingMax] = append(steps[StepScalingMax], pendingChange{core: core, frequency: f})
		}
	}

	for index, pending := range steps {
		step := Step(index)
		for _, change := range pending {
			applied, err := applyOne(step, change)
			if err != nil {
				logger.Debug("batch stopped", "step", step.String(), "cpu", change.core.Number(), "error", err)
				return report, &StepError{Step: step, Core: change.core.Number(), Err: err}
			}
			report.Applied = append(report.Applied, applied)
		}
	}

	logger.Debug("batch applied", "changes", len(report.Applied), "cores", len(selected))
	return report, nil
}

func applyOne(step Step, change pendingChange) (Change, error) {
	core := change.core
	applied := Change{Step: step, Core: core.Number()}
	var err error
	switch step {
	case StepGovernor:
		applied.Old, applied.New = core.Governor(), change.governor
		err = core.SetGovernor(change.governor)
	case StepScalingMin:
		applied.Old, applied.New = core.ScalingMin().Attribute(), change.frequency.Attribute()
		err = core.SetScalingMin(change.frequency)
	case StepScalingMax:
		applied.Old, applied.New = core.ScalingMax().Attribute(), change.frequency.Attribute()
		err = core.SetScalingMax(change.frequency)
	}
	return applied, err
}

// selectCores returns the cores named by numbers in ascending order, or
// every core when numbers is empty.
func selectCores(cores []*Core, numbers []int) ([]*Core, error) {
	byNumber := make(map[int]*Core, len(cores))
	for _, core := range cores {
		byNumber[core.Number()] = core
	}

	var selected []*Core
	if len(numbers) == 0 {
		selected = slices.Clone(cores)
	} else {
		wanted := slices.Clone(numbers)
		slices.Sort(wanted)
		wanted = slices.Compact(wanted)
		for _, number := range wanted {
			core, ok := byNumber[number]
			if !ok {
				return nil, fmt.Errorf("%w: cpu%d", ErrUnknownCore, number)
			}
			selected = append(selected, core)
		}
	}

	slices.SortFunc(selected, func(a, b *Core) int { return a.Number() - b.Number() })
	return selected, nil
}
