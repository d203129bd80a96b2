// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
)

// DefaultRoot is where Linux exposes per-CPU directories.
const DefaultRoot = "/sys/devices/system/cpu"

// Discover reads the settings of every core under [DefaultRoot].
func Discover(logger *slog.Logger) ([]*Core, error) {
	return DiscoverFrom(DefaultRoot, logger)
}

// DiscoverFrom reads the settings of every core under root, which has
// the layout of /sys/devices/system/cpu. Tests point it at synthetic
// trees; containers can point it at a bind-mounted host sysfs.
//
// The result is sorted by core number. Any unreadable, missing, or
// malformed attribute on any core fails the whole call: a partial
// result would hide cores from batch operations.
func DiscoverFrom(root string, logger *slog.Logger) ([]*Core, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", ErrDiscoveryUnavailable, root, err)
	}

	var cores []*Core
	for _, entry := range entries {
		number, ok := coreNumber(entry.Name())
		if !ok || !isDirectory(root, entry) {
			continue
		}

		dir := filepath.Join(root, entry.Name(), "cpufreq")
		core, err := readCore(number, dir, SysfsStore{Dir: dir}, logger)
		if err != nil {
			return nil, err
		}
		logger.Debug("discovered core",
			"cpu", number,
			"governor", core.Governor(),
			"scaling_min_khz", uint32(core.ScalingMin()),
			"scaling_max_khz", uint32(core.ScalingMax()),
		)
		cores = append(cores, core)
	}

	slices.SortFunc(cores, func(a, b *Core) int { return a.Number() - b.Number() })
	return cores, nil
}

// ReadCore reads one core's settings through store. It is the
// per-core half of [DiscoverFrom], exposed for callers that provide
// their own [Store].
func ReadCore(number int, path string, store Store, logger *slog.Logger) (*Core, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return readCore(number, path, store, logger)
}

func readCore(number int, path string, store Store, logger *slog.Logger) (*Core, error) {
	read := func(attribute string) (string, error) {
		raw, err := store.Read(attribute)
		if err == nil {
			return raw, nil
		}
		// An attribute that exists but cannot be read is as unavailable
		// as one that is absent; Err keeps the cause for IsPermission.
		return "", &AttributeError{Path: filepath.Join(path, attribute), Kind: ErrAttributeMissing, Err: err}
	}
	malformed := func(attribute string, err error) error {
		return &AttributeError{Path: filepath.Join(path, attribute), Kind: ErrMalformedAttribute, Detail: err.Error()}
	}

	settings := Settings{Number: number}
	frequencies := []struct {
		attribute string
		target    *Frequency
	}{
		{AttrHardwareMin, &settings.HardwareMin},
		{AttrHardwareMax, &settings.HardwareMax},
		{AttrScalingMin, &settings.ScalingMin},
		{AttrScalingMax, &settings.ScalingMax},
	}
	for _, field := range frequencies {
		raw, err := read(field.attribute)
		if err != nil {
			return nil, err
		}
		value, err := parseFrequencyAttribute(raw)
		if err != nil {
			return nil, malformed(field.attribute, err)
		}
		*field.target = value
	}

	raw, err := read(AttrGovernor)
	if err != nil {
		return nil, err
	}
	if settings.Governor, err = parseGovernorAttribute(raw); err != nil {
		return nil, malformed(AttrGovernor, err)
	}

	raw, err = read(AttrAvailableGovernors)
	if err != nil {
		return nil, err
	}
	if settings.AvailableGovernors, err = parseGovernorList(raw); err != nil {
		return nil, malformed(AttrAvailableGovernors, err)
	}

	if err := settings.Check(); err != nil {
		return nil, &AttributeError{Path: path, Kind: ErrMalformedAttribute, Detail: err.Error()}
	}
	return NewCore(path, settings, store, logger)
}

// coreNumber extracts N from a canonical "cpuN" name. Names with a
// non-numeric suffix (cpufreq, cpuidle) or a leading zero are rejected,
// which keeps core numbers unique.
func coreNumber(name string) (int, bool) {
	if len(name) < 4 || name[:3] != "cpu" {
		return 0, false
	}
	suffix := name[3:]
	if !isDecimal(suffix) || (len(suffix) > 1 && suffix[0] == '0') {
		return 0, false
	}
	number, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return number, true
}

// isDirectory follows symlinks, since some sysfs views link cpu
// directories rather than nesting them.
func isDirectory(root string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}
