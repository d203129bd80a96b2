// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Attribute file names inside a core's cpufreq directory.
const (
	AttrHardwareMin        = "cpuinfo_min_freq"
	AttrHardwareMax        = "cpuinfo_max_freq"
	AttrScalingMin         = "scaling_min_freq"
	AttrScalingMax         = "scaling_max_freq"
	AttrGovernor           = "scaling_governor"
	AttrAvailableGovernors = "scaling_available_governors"

	// AttrCurrent is the frequency the core runs at right now. Some
	// drivers omit it, so discovery never reads it.
	AttrCurrent = "scaling_cur_freq"
)

// Attributes lists every attribute discovery reads, in read order.
var Attributes = []string{
	AttrHardwareMin,
	AttrHardwareMax,
	AttrScalingMin,
	AttrScalingMax,
	AttrGovernor,
	AttrAvailableGovernors,
}

// WritableAttributes lists the attributes the setters write.
var WritableAttributes = []string{
	AttrGovernor,
	AttrScalingMin,
	AttrScalingMax,
}

// Store reads and writes the attribute files of one core. Read returns
// the raw file content; a missing file must produce an error matching
// fs.ErrNotExist. Write replaces an existing attribute's content and
// must never create a file.
type Store interface {
	Read(attribute string) (string, error)
	Write(attribute, value string) error
}

// SysfsStore is the [Store] backed by a core's cpufreq directory.
type SysfsStore struct {
	// Dir is the cpufreq directory, e.g. /sys/devices/system/cpu/cpu0/cpufreq.
	Dir string
}

// Read returns the content of the attribute file.
func (s SysfsStore) Read(attribute string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, attribute))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write writes value to the attribute file in a single write(2), the
// way a shell redirect does. The file must already exist.
func (s SysfsStore) Write(attribute, value string) error {
	file, err := os.OpenFile(filepath.Join(s.Dir, attribute), os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(value); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Writable reports whether the calling process may write the attribute,
// using access(2) so nothing is modified.
func (s SysfsStore) Writable(attribute string) bool {
	return unix.Access(filepath.Join(s.Dir, attribute), unix.W_OK) == nil
}
