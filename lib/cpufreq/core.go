// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
)

// Settings is a plain copy of one core's settings. It is the shape used
// for JSON output and snapshot files.
type Settings struct {
	Number             int       `json:"number"`
	HardwareMin        Frequency `json:"hardware_min_khz"`
	HardwareMax        Frequency `json:"hardware_max_khz"`
	ScalingMin         Frequency `json:"scaling_min_khz"`
	ScalingMax         Frequency `json:"scaling_max_khz"`
	Governor           string    `json:"governor"`
	AvailableGovernors []string  `json:"available_governors"`
}

// Check reports whether the settings are internally consistent: the
// scaling bounds sit inside the hardware bounds in order, and the
// governor is one of the available governors.
func (s Settings) Check() error {
	if s.HardwareMin > s.HardwareMax {
		return fmt.Errorf("hardware min %d kHz above hardware max %d kHz", s.HardwareMin, s.HardwareMax)
	}
	if s.ScalingMin < s.HardwareMin {
		return fmt.Errorf("scaling min %d kHz below hardware min %d kHz", s.ScalingMin, s.HardwareMin)
	}
	if s.ScalingMax > s.HardwareMax {
		return fmt.Errorf("scaling max %d kHz above hardware max %d kHz", s.ScalingMax, s.HardwareMax)
	}
	if s.ScalingMin > s.ScalingMax {
		return fmt.Errorf("scaling min %d kHz above scaling max %d kHz", s.ScalingMin, s.ScalingMax)
	}
	if len(s.AvailableGovernors) == 0 {
		return fmt.Errorf("no available governors")
	}
	if !slices.Contains(s.AvailableGovernors, s.Governor) {
		return fmt.Errorf("governor %q not among available governors %v", s.Governor, s.AvailableGovernors)
	}
	return nil
}

// Core is the frequency scaling state of one logical CPU as last read
// or written through this record. Accessors never touch the
// filesystem; setters write through the store and then update the
// record.
type Core struct {
	path     string
	store    Store
	logger   *slog.Logger
	settings Settings
}

// NewCore builds a core record from already-parsed settings. path
// identifies the attribute location for display and errors; store
// receives the setters' writes. A nil logger discards log output.
// NewCore rejects settings that fail [Settings.Check].
func NewCore(path string, settings Settings, store Store, logger *slog.Logger) (*Core, error) {
	if err := settings.Check(); err != nil {
		return nil, fmt.Errorf("cpu%d: %w", settings.Number, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	settings.AvailableGovernors = slices.Clone(settings.AvailableGovernors)
	return &Core{
		path:     path,
		store:    store,
		logger:   logger.With("cpu", settings.Number),
		settings: settings,
	}, nil
}

// Number is the N of the cpuN directory.
func (c *Core) Number() int { return c.settings.Number }

// Path is the core's cpufreq attribute directory.
func (c *Core) Path() string { return c.path }

// HardwareMin is cpuinfo_min_freq.
func (c *Core) HardwareMin() Frequency { return c.settings.HardwareMin }

// HardwareMax is cpuinfo_max_freq.
func (c *Core) HardwareMax() Frequency { return c.settings.HardwareMax }

// ScalingMin is scaling_min_freq.
func (c *Core) ScalingMin() Frequency { return c.settings.ScalingMin }

// ScalingMax is scaling_max_freq.
func (c *Core) ScalingMax() Frequency { return c.settings.ScalingMax }

// Governor is scaling_governor.
func (c *Core) Governor() string { return c.settings.Governor }

// AvailableGovernors returns a copy of scaling_available_governors in
// the order the kernel listed them.
func (c *Core) AvailableGovernors() []string {
	return slices.Clone(c.settings.AvailableGovernors)
}

// Settings returns a copy of the current settings.
func (c *Core) Settings() Settings {
	settings := c.settings
	settings.AvailableGovernors = slices.Clone(settings.AvailableGovernors)
	return settings
}

// ValidateGovernor checks that name is one of the available governors.
func (c *Core) ValidateGovernor(name string) error {
	if !slices.Contains(c.settings.AvailableGovernors, name) {
		return &GovernorError{
			Core:      c.settings.Number,
			Name:      name,
			Available: c.AvailableGovernors(),
		}
	}
	return nil
}

// ValidateScalingMin checks HardwareMin <= f <= ScalingMax.
func (c *Core) ValidateScalingMin(f Frequency) error {
	low, high := c.settings.HardwareMin, c.settings.ScalingMax
	if f < low || f > high {
		return &RangeError{Core: c.settings.Number, Attribute: AttrScalingMin, Value: f, Low: low, High: high}
	}
	return nil
}

// ValidateScalingMax checks max(HardwareMin, ScalingMin) <= f <= HardwareMax.
func (c *Core) ValidateScalingMax(f Frequency) error {
	low, high := max(c.settings.HardwareMin, c.settings.ScalingMin), c.settings.HardwareMax
	if f < low || f > high {
		return &RangeError{Core: c.settings.Number, Attribute: AttrScalingMax, Value: f, Low: low, High: high}
	}
	return nil
}

// SetGovernor writes scaling_governor. The record changes only if the
// governor is available and the write succeeds.
func (c *Core) SetGovernor(name string) error {
	if err := c.ValidateGovernor(name); err != nil {
		return err
	}
	if err := c.write(AttrGovernor, name); err != nil {
		return err
	}
	c.settings.Governor = name
	return nil
}

// SetScalingMin writes scaling_min_freq. The record changes only if f
// passes [Core.ValidateScalingMin] and the write succeeds.
func (c *Core) SetScalingMin(f Frequency) error {
	if err := c.ValidateScalingMin(f); err != nil {
		return err
	}
	if err := c.write(AttrScalingMin, f.Attribute()); err != nil {
		return err
	}
	c.settings.ScalingMin = f
	return nil
}

// SetScalingMax writes scaling_max_freq. The record changes only if f
// passes [Core.ValidateScalingMax] and the write succeeds.
func (c *Core) SetScalingMax(f Frequency) error {
	if err := c.ValidateScalingMax(f); err != nil {
		return err
	}
	if err := c.write(AttrScalingMax, f.Attribute()); err != nil {
		return err
	}
	c.settings.ScalingMax = f
	return nil
}

// Current reads the core's running frequency from sysfs. Unlike the
// other accessors it reads on every call, since the value changes
// continuously under every governor but userspace.
func (c *Core) Current() (Frequency, error) {
	raw, err := c.store.Read(AttrCurrent)
	if err != nil {
		return 0, &AttributeError{Path: filepath.Join(c.path, AttrCurrent), Kind: ErrAttributeMissing, Err: err}
	}
	f, err := parseFrequencyAttribute(raw)
	if err != nil {
		return 0, &AttributeError{Path: filepath.Join(c.path, AttrCurrent), Kind: ErrMalformedAttribute, Detail: err.Error()}
	}
	return f, nil
}

func (c *Core) write(attribute, value string) error {
	c.logger.Debug("writing cpufreq attribute", "attribute", attribute, "value", value)
	if err := c.store.Write(attribute, value); err != nil {
		return &WriteError{Core: c.settings.Number, Attribute: attribute, Value: value, Err: err}
	}
	return nil
}
