// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/razorheadfx/mediocore/lib/cpufreq"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "MEDIOCORE_CONFIG"

// ColorMode controls styled table output.
type ColorMode string

const (
	// ColorAuto styles output only when stdout is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output even when piped.
	ColorAlways ColorMode = "always"
	// ColorNever always prints plain tab-aligned text.
	ColorNever ColorMode = "never"
)

// SnapshotFormat is the default encoding for `mdcr snapshot save`.
type SnapshotFormat string

const (
	SnapshotCBOR SnapshotFormat = "cbor"
	SnapshotJSON SnapshotFormat = "json"
)

// Config is the mdcr configuration.
type Config struct {
	// SysfsRoot is the directory holding the cpuN entries.
	// Default: /sys/devices/system/cpu
	SysfsRoot string `yaml:"sysfs_root"`

	// Color controls styled output: auto, always, or never.
	// Default: auto
	Color ColorMode `yaml:"color"`

	// Snapshot configures `mdcr snapshot`.
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Profiles are named plans usable with `mdcr preset apply`.
	Profiles map[string]Profile `yaml:"profiles"`
}

// SnapshotConfig configures snapshot files.
type SnapshotConfig struct {
	// Format is the encoding used when saving: cbor or json.
	// Default: cbor
	Format SnapshotFormat `yaml:"format"`

	// Directory resolves relative snapshot file names. Empty means
	// the working directory.
	Directory string `yaml:"directory"`
}

// Profile is a named plan. Empty fields leave that setting unchanged.
type Profile struct {
	Description string `yaml:"description"`

	// Governor is the scaling governor to select.
	Governor string `yaml:"governor"`

	// Min and Max are "hwmin", "hwmax", bare kHz, or a frequency with
	// a unit such as "1.6GHz".
	Min string `yaml:"min"`
	Max string `yaml:"max"`

	// Cores restricts the profile to a CPU list such as "0-3". Empty
	// means all cores.
	Cores string `yaml:"cores"`
}

// Plan converts the profile into a batch plan.
func (p Profile) Plan() (cpufreq.Plan, error) {
	var plan cpufreq.Plan
	if p.Governor != "" {
		plan.Governor = cpufreq.SetGovernorTo(p.Governor)
	}
	if p.Min != "" {
		target, err := cpufreq.ParseFrequencyTarget(p.Min)
		if err != nil {
			return plan, fmt.Errorf("min: %w", err)
		}
		plan.Min = target
	}
	if p.Max != "" {
		target, err := cpufreq.ParseFrequencyTarget(p.Max)
		if err != nil {
			return plan, fmt.Errorf("max: %w", err)
		}
		plan.Max = target
	}
	if p.Cores != "" {
		cores, err := cpufreq.ParseCoreList(p.Cores)
		if err != nil {
			return plan, fmt.Errorf("cores: %w", err)
		}
		plan.Cores = cores
	}
	if plan.IsEmpty() {
		return plan, fmt.Errorf("%w: set governor, min, or max", cpufreq.ErrNoChanges)
	}
	return plan, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SysfsRoot: cpufreq.DefaultRoot,
		Color:     ColorAuto,
		Snapshot: SnapshotConfig{
			Format: SnapshotCBOR,
		},
	}
}

// Load loads the file named by MEDIOCORE_CONFIG, or returns Default
// when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path. Fields the file omits keep
// their defaults. The result is expanded but not validated; call
// Validate before use.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.SysfsRoot = expandVars(c.SysfsRoot, vars)
	c.Snapshot.Directory = expandVars(c.Snapshot.Directory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration, reporting every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.SysfsRoot == "" {
		errs = append(errs, fmt.Errorf("sysfs_root is required"))
	} else if !filepath.IsAbs(c.SysfsRoot) {
		errs = append(errs, fmt.Errorf("sysfs_root must be an absolute path, got %q", c.SysfsRoot))
	}

	colorModes := []ColorMode{ColorAuto, ColorAlways, ColorNever}
	if !slices.Contains(colorModes, c.Color) {
		errs = append(errs, fmt.Errorf("color must be one of: %v", colorModes))
	}

	formats := []SnapshotFormat{SnapshotCBOR, SnapshotJSON}
	if !slices.Contains(formats, c.Snapshot.Format) {
		errs = append(errs, fmt.Errorf("snapshot.format must be one of: %v", formats))
	}

	for _, name := range c.ProfileNames() {
		if _, builtin := cpufreq.LookupPreset(name); builtin {
			errs = append(errs, fmt.Errorf("profiles.%s: name is taken by a built-in preset", name))
			continue
		}
		if _, err := c.Profiles[name].Plan(); err != nil {
			errs = append(errs, fmt.Errorf("profiles.%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ProfileNames returns the configured profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets returns the built-in presets followed by the configured
// profiles. Profiles that do not convert to a plan are skipped;
// Validate reports them.
func (c *Config) Presets() []cpufreq.Preset {
	presets := cpufreq.BuiltinPresets()
	for _, name := range c.ProfileNames() {
		profile := c.Profiles[name]
		plan, err := profile.Plan()
		if err != nil {
			continue
		}
		presets = append(presets, cpufreq.Preset{Name: name, Description: profile.Description, Plan: plan})
	}
	return presets
}

// Preset looks a preset up by name among built-ins and profiles.
func (c *Config) Preset(name string) (cpufreq.Preset, error) {
	if preset, ok := cpufreq.LookupPreset(name); ok {
		return preset, nil
	}
	profile, ok := c.Profiles[name]
	if !ok {
		return cpufreq.Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	plan, err := profile.Plan()
	if err != nil {
		return cpufreq.Preset{}, fmt.Errorf("profile %q: %w", name, err)
	}
	return cpufreq.Preset{Name: name, Description: profile.Description, Plan: plan}, nil
}

// SnapshotPath resolves a snapshot file name against
// Snapshot.Directory.
func (c *Config) SnapshotPath(name string) string {
	if filepath.IsAbs(name) || c.Snapshot.Directory == "" {
		return name
	}
	return filepath.Join(c.Snapshot.Directory, name)
}
