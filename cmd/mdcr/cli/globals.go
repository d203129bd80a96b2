// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/razorheadfx/mediocore/lib/config"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
)

// GlobalParams holds the flags every host-facing command accepts.
// Embed it in a command's parameter struct.
type GlobalParams struct {
	ConfigPath string `flag:"config" desc:"configuration file (default: $MEDIOCORE_CONFIG, else built-in defaults)"`
	SysfsRoot  string `flag:"sysfs-root" desc:"directory holding the cpuN entries (overrides the config file)"`
	Verbose    bool   `flag:"verbose,v" desc:"log every attribute read and write"`
}

// LogLevel lowers the level to debug with --verbose.
func (g *GlobalParams) LogLevel() slog.Level {
	if g.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// LoadConfig resolves the configuration: --config, then
// $MEDIOCORE_CONFIG, then the defaults. --sysfs-root overrides the
// file. The result is validated.
func (g *GlobalParams) LoadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if g.ConfigPath != "" {
		cfg, err = config.LoadFile(g.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, Classify(err)
	}
	if g.SysfsRoot != "" {
		cfg.SysfsRoot = g.SysfsRoot
	}
	if err := cfg.Validate(); err != nil {
		return nil, Wrap(CategoryValidation, err)
	}
	return cfg, nil
}

// Discover loads the configuration and discovers every core under the
// configured root.
func (g *GlobalParams) Discover(logger *slog.Logger) (*config.Config, []*cpufreq.Core, error) {
	cfg, err := g.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	cores, err := cpufreq.DiscoverFrom(cfg.SysfsRoot, logger)
	if err != nil {
		return nil, nil, Classify(err)
	}
	logger.Debug("discovered cores", "root", cfg.SysfsRoot, "count", len(cores))
	return cfg, cores, nil
}

// ParseCores parses a --cores value. An empty value selects all cores
// and returns nil.
func ParseCores(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	numbers, err := cpufreq.ParseCoreList(value)
	if err != nil {
		return nil, Wrap(CategoryValidation, err)
	}
	return numbers, nil
}
