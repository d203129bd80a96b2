// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/razorheadfx/mediocore/lib/clock"
	"github.com/razorheadfx/mediocore/lib/codec"
	"github.com/razorheadfx/mediocore/lib/cpufreq"
)

// CurrentVersion is the snapshot schema version written by Capture.
const CurrentVersion = 1

var (
	// ErrUnsupportedVersion means the file was written by an
	// incompatible release.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrInvalidSnapshot means the file decoded but its content is not
	// a usable snapshot.
	ErrInvalidSnapshot = errors.New("snapshot: invalid snapshot")

	// ErrHardwareMismatch means a saved core's hardware range differs
	// from the live core's, so the snapshot was taken on other hardware.
	ErrHardwareMismatch = errors.New("snapshot: hardware mismatch")

	// ErrCoreMissing means a core selected for restore has no saved
	// settings, or a saved core no longer exists.
	ErrCoreMissing = errors.New("snapshot: core missing")
)

// Format is a snapshot file encoding.
type Format string

const (
	FormatCBOR Format = "cbor"
	FormatJSON Format = "json"
)

// Snapshot is the saved settings of a set of cores.
type Snapshot struct {
	Version int                `json:"version"`
	TakenAt time.Time          `json:"taken_at"`
	Root    string             `json:"root"`
	Cores   []cpufreq.Settings `json:"cores"`
}

// Capture records the current settings of cores.
func Capture(cores []*cpufreq.Core, root string, clk clock.Clock) Snapshot {
	snapshot := Snapshot{
		Version: CurrentVersion,
		TakenAt: clk.Now().UTC(),
		Root:    root,
	}
	for _, core := range cores {
		snapshot.Cores = append(snapshot.Cores, core.Settings())
	}
	slices.SortFunc(snapshot.Cores, func(a, b cpufreq.Settings) int { return a.Number - b.Number })
	return snapshot
}

// Validate checks the version, that core numbers are unique, and that
// every saved record is internally consistent.
func (s Snapshot) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("%w: %d (this build reads %d)", ErrUnsupportedVersion, s.Version, CurrentVersion)
	}
	if len(s.Cores) == 0 {
		return fmt.Errorf("%w: no cores", ErrInvalidSnapshot)
	}
	seen := make(map[int]bool, len(s.Cores))
	for _, settings := range s.Cores {
		if seen[settings.Number] {
			return fmt.Errorf("%w: cpu%d saved twice", ErrInvalidSnapshot, settings.Number)
		}
		seen[settings.Number] = true
		if err := settings.Check(); err != nil {
			return fmt.Errorf("%w: cpu%d: %w", ErrInvalidSnapshot, settings.Number, err)
		}
	}
	return nil
}

// Numbers returns the saved core numbers in ascending order.
func (s Snapshot) Numbers() []int {
	numbers := make([]int, 0, len(s.Cores))
	for _, settings := range s.Cores {
		numbers = append(numbers, settings.Number)
	}
	slices.Sort(numbers)
	return numbers
}

// Encode writes s to w in format.
func Encode(w io.Writer, s Snapshot, format Format) error {
	switch format {
	case FormatCBOR:
		return codec.NewEncoder(w).Encode(s)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	default:
		return fmt.Errorf("unknown snapshot format %q", format)
	}
}

// Decode parses a snapshot in either format, optionally zstd-compressed,
// and validates it. JSON is recognized by a leading '{' or a comment;
// anything else is CBOR.
func Decode(data []byte) (Snapshot, error) {
	data, err := Decompress(data)
	if err != nil {
		return Snapshot{}, err
	}
	var snapshot Snapshot
	if DetectFormat(data) == FormatJSON {
		if err := json.Unmarshal(jsonc.ToJSON(data), &snapshot); err != nil {
			return Snapshot{}, fmt.Errorf("parsing JSON snapshot: %w", err)
		}
	} else {
		if err := codec.Unmarshal(data, &snapshot); err != nil {
			return Snapshot{}, fmt.Errorf("parsing CBOR snapshot: %w", err)
		}
	}
	if err := snapshot.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// DetectFormat guesses the encoding of data. A CBOR map header is
// 0xa0-0xbb, which never collides with '{' (0x7b) or '/' (0x2f).
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '/') {
		return FormatJSON
	}
	return FormatCBOR
}

// Save atomically writes s to path: the data goes to a temporary file
// in the same directory, is synced, and is renamed into place, so a
// crash never leaves a truncated snapshot behind. A path ending in
// [CompressedSuffix] is written zstd-compressed.
func Save(path string, s Snapshot, format Format) error {
	var buffer bytes.Buffer
	if err := Encode(&buffer, s, format); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	data := buffer.Bytes()
	if strings.HasSuffix(path, CompressedSuffix) {
		data = Compress(data)
	}

	temporaryPath := path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating temporary snapshot file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary snapshot file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary snapshot file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary snapshot file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming snapshot file into place: %w", err)
	}

	parentDirectory, err := os.Open(filepath.Dir(path))
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}
	return nil
}

// Load reads and decodes a snapshot file.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	snapshot, err := Decode(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snapshot, nil
}

// Restore applies the saved settings to the live cores. selection
// limits the restore to some core numbers; empty means every saved
// core. Every selected core must exist both live and in the snapshot
// with the same hardware range; this is checked before any write.
func Restore(cores []*cpufreq.Core, s Snapshot, selection []int, logger *slog.Logger) (cpufreq.Report, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var report cpufreq.Report

	if err := s.Validate(); err != nil {
		return report, err
	}
	saved := make(map[int]cpufreq.Settings, len(s.Cores))
	for _, settings := range s.Cores {
		saved[settings.Number] = settings
	}
	live := make(map[int]*cpufreq.Core, len(cores))
	for _, core := range cores {
		live[core.Number()] = core
	}

	numbers := slices.Clone(selection)
	if len(numbers) == 0 {
		numbers = s.Numbers()
	}
	slices.Sort(numbers)
	numbers = slices.Compact(numbers)

	governors := make(map[int]string, len(numbers))
	widenedMax := make(map[int]cpufreq.Frequency, len(numbers))
	savedMin := make(map[int]cpufreq.Frequency, len(numbers))
	savedMax := make(map[int]cpufreq.Frequency, len(numbers))
	for _, number := range numbers {
		settings, ok := saved[number]
		if !ok {
			return report, fmt.Errorf("%w: cpu%d is not in the snapshot", ErrCoreMissing, number)
		}
		core, ok := live[number]
		if !ok {
			return report, fmt.Errorf("%w: cpu%d is not present on this host", ErrCoreMissing, number)
		}
		if core.HardwareMin() != settings.HardwareMin || core.HardwareMax() != settings.HardwareMax {
			return report, fmt.Errorf("%w: cpu%d hardware range is [%s, %s], snapshot has [%s, %s]",
				ErrHardwareMismatch, number,
				core.HardwareMin(), core.HardwareMax(), settings.HardwareMin, settings.HardwareMax)
		}
		governors[number] = settings.Governor
		widenedMax[number] = max(settings.ScalingMax, core.ScalingMax())
		savedMin[number] = settings.ScalingMin
		savedMax[number] = settings.ScalingMax
	}

	logger.Debug("restoring snapshot", "taken_at", s.TakenAt, "cores", cpufreq.FormatCoreList(numbers))

	widen := cpufreq.Plan{
		Cores:    numbers,
		Governor: cpufreq.GovernorPerCore(governors),
		Max:      cpufreq.FrequencyPerCore(widenedMax),
	}
	first, err := cpufreq.Apply(cores, widen, logger)
	report.Applied = append(report.Applied, first.Applied...)
	if err != nil {
		return report, err
	}

	settle := cpufreq.Plan{
		Cores: numbers,
		Min:   cpufreq.FrequencyPerCore(savedMin),
		Max:   cpufreq.FrequencyPerCore(savedMax),
	}
	second, err := cpufreq.Apply(cores, settle, logger)
	report.Applied = append(report.Applied, second.Applied...)
	return report, err
}
