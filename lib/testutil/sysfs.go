// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// CPUFixture describes one synthetic core. Frequencies are kHz.
type CPUFixture struct {
	Number             int
	HardwareMin        uint32
	HardwareMax        uint32
	ScalingMin         uint32
	ScalingMax         uint32
	Governor           string
	AvailableGovernors []string

	// Current is the scaling_cur_freq content. Zero omits the file.
	Current uint32
}

// DefaultCPU returns a fixture with an 800 MHz to 2.5 GHz hardware
// range, scaling pinned to 850-900 MHz, and the powersave governor
// active out of performance and powersave.
func DefaultCPU(number int) CPUFixture {
	return CPUFixture{
		Number:             number,
		HardwareMin:        800000,
		HardwareMax:        2500000,
		ScalingMin:         850000,
		ScalingMax:         900000,
		Governor:           "powersave",
		AvailableGovernors: []string{"performance", "powersave"},
	}
}

// Attributes renders the fixture as attribute file contents, each
// newline-terminated the way sysfs presents them.
func (c CPUFixture) Attributes() map[string]string {
	frequency := func(value uint32) string {
		return strconv.FormatUint(uint64(value), 10) + "\n"
	}
	attributes := map[string]string{
		"cpuinfo_min_freq":            frequency(c.HardwareMin),
		"cpuinfo_max_freq":            frequency(c.HardwareMax),
		"scaling_min_freq":            frequency(c.ScalingMin),
		"scaling_max_freq":            frequency(c.ScalingMax),
		"scaling_governor":            c.Governor + "\n",
		"scaling_available_governors": strings.Join(c.AvailableGovernors, " ") + " \n",
	}
	if c.Current != 0 {
		attributes["scaling_cur_freq"] = frequency(c.Current)
	}
	return attributes
}

// WriteCPUTree writes cpuN/cpufreq/<attribute> files under root for
// each fixture.
func WriteCPUTree(t TB, root string, cpus ...CPUFixture) {
	t.Helper()
	for _, cpu := range cpus {
		for attribute, content := range cpu.Attributes() {
			WriteAttribute(t, root, cpu.Number, attribute, content)
		}
	}
}

// WriteAttribute writes one attribute file of one core, creating
// parent directories as needed.
func WriteAttribute(t TB, root string, cpu int, attribute, content string) {
	t.Helper()
	WriteFile(t, root, filepath.Join("cpu"+strconv.Itoa(cpu), "cpufreq", attribute), content)
}

// ReadAttribute returns the raw content of one attribute file.
func ReadAttribute(t TB, root string, cpu int, attribute string) string {
	t.Helper()
	path := filepath.Join(root, "cpu"+strconv.Itoa(cpu), "cpufreq", attribute)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// RemoveAttribute deletes one attribute file.
func RemoveAttribute(t TB, root string, cpu int, attribute string) {
	t.Helper()
	path := filepath.Join(root, "cpu"+strconv.Itoa(cpu), "cpufreq", attribute)
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove %s: %v", path, err)
	}
}

// WriteFile creates a file at path within root, creating parent
// directories as needed.
func WriteFile(t TB, root, path, content string) {
	t.Helper()
	fullPath := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", fullPath, err)
	}
}

// Mkdir creates a directory within root.
func Mkdir(t TB, root, path string) {
	t.Helper()
	fullPath := filepath.Join(root, path)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", fullPath, err)
	}
}
