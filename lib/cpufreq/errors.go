// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/sys/unix"
)

// Sentinel errors. Every error returned by this package matches exactly
// one of these with errors.Is; the structured types below carry the
// detail.
var (
	// ErrDiscoveryUnavailable means the cpu root directory could not be
	// listed (missing sysfs, non-Linux host, wrong root).
	ErrDiscoveryUnavailable = errors.New("cpufreq: discovery unavailable")

	// ErrAttributeMissing means a qualifying core lacks one of the
	// required cpufreq attribute files.
	ErrAttributeMissing = errors.New("cpufreq: attribute missing")

	// ErrMalformedAttribute means an attribute's content could not be
	// parsed, or the parsed record contradicts itself.
	ErrMalformedAttribute = errors.New("cpufreq: malformed attribute")

	// ErrInvalidGovernor means a requested governor is not in the
	// core's available governors.
	ErrInvalidGovernor = errors.New("cpufreq: invalid governor")

	// ErrOutOfRange means a requested frequency violates the core's
	// bounds.
	ErrOutOfRange = errors.New("cpufreq: frequency out of range")

	// ErrWriteFailed means the attribute write was rejected by the OS.
	ErrWriteFailed = errors.New("cpufreq: write failed")

	// ErrNoChanges means a batch plan requested no change at all.
	ErrNoChanges = errors.New("cpufreq: no changes requested")

	// ErrUnknownCore means a batch plan selected a core number that
	// discovery did not return.
	ErrUnknownCore = errors.New("cpufreq: unknown core")

	// ErrInvalidSelection means a core list expression could not be
	// parsed.
	ErrInvalidSelection = errors.New("cpufreq: invalid core selection")
)

// AttributeError reports a discovery-time problem with one attribute
// file. Kind is ErrAttributeMissing or ErrMalformedAttribute.
type AttributeError struct {
	Path   string
	Kind   error
	Detail string
	Err    error
}

func (e *AttributeError) Error() string {
	var builder strings.Builder
	builder.WriteString(e.Kind.Error())
	builder.WriteString(": ")
	builder.WriteString(e.Path)
	if e.Detail != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Detail)
	}
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

// Is matches the sentinel in Kind.
func (e *AttributeError) Is(target error) bool { return target == e.Kind }

func (e *AttributeError) Unwrap() error { return e.Err }

// RangeError reports a frequency rejected by a setter. Low and High are
// the inclusive bounds that were in force when the request was checked.
type RangeError struct {
	Core      int
	Attribute string
	Value     Frequency
	Low       Frequency
	High      Frequency
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cpufreq: cpu%d %s %d kHz outside [%d, %d] kHz",
		e.Core, e.Attribute, uint32(e.Value), uint32(e.Low), uint32(e.High))
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// GovernorError reports a governor name that the core does not offer.
type GovernorError struct {
	Core      int
	Name      string
	Available []string
}

func (e *GovernorError) Error() string {
	return fmt.Sprintf("cpufreq: cpu%d governor %q not available (have %s)",
		e.Core, e.Name, strings.Join(e.Available, ", "))
}

func (e *GovernorError) Is(target error) bool { return target == ErrInvalidGovernor }

// WriteError reports an attribute write that the OS refused. Err is the
// underlying OS error, so errors.Is(err, fs.ErrPermission) works.
type WriteError struct {
	Core      int
	Attribute string
	Value     string
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cpufreq: cpu%d writing %q to %s: %v", e.Core, e.Value, e.Attribute, e.Err)
}

func (e *WriteError) Is(target error) bool { return target == ErrWriteFailed }

func (e *WriteError) Unwrap() error { return e.Err }

// StepError reports the batch step that stopped an [Apply] call. Err is
// the setter's error.
type StepError struct {
	Step Step
	Core int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s on cpu%d: %v", e.Step, e.Core, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// IsPermission reports whether err was caused by insufficient
// privileges or a read-only sysfs mount. Writing cpufreq attributes
// normally requires root.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, unix.EACCES) ||
		errors.Is(err, unix.EPERM) ||
		errors.Is(err, unix.EROFS)
}

// IsValidation reports whether err is a request the core rejected
// before writing anything: an unknown governor, an out-of-range
// frequency, an unknown core, or an empty plan.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidGovernor) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrNoChanges) ||
		errors.Is(err, ErrUnknownCore) ||
		errors.Is(err, ErrInvalidSelection)
}
