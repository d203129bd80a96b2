// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Frequency is a clock frequency in kHz, the unit of every cpufreq
// attribute.
type Frequency uint32

// Common multiples for building frequencies in code.
const (
	KHz Frequency = 1
	MHz Frequency = 1000
	GHz Frequency = 1000 * 1000
)

// String formats the frequency with an SI prefix and up to three
// decimals, e.g. "2.5 GHz" or "800 MHz".
func (f Frequency) String() string {
	return humanize.SIWithDigits(float64(f)*1000, 3, "Hz")
}

// Attribute returns the decimal kHz representation written to sysfs.
func (f Frequency) Attribute() string {
	return strconv.FormatUint(uint64(f), 10)
}

// ParseFrequency parses a user-supplied frequency. A bare decimal
// number is kHz, matching sysfs. Otherwise the value must carry an SI
// prefixed hertz unit: "800MHz", "2.5 GHz", "1200000kHz".
func ParseFrequency(input string) (Frequency, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("empty frequency")
	}
	if isDecimal(input) {
		value, err := strconv.ParseUint(input, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("frequency %q: %w", input, err)
		}
		return Frequency(value), nil
	}

	hertz, unit, err := humanize.ParseSI(input)
	if err != nil {
		return 0, fmt.Errorf("frequency %q: %w", input, err)
	}
	if unit != "Hz" {
		return 0, fmt.Errorf("frequency %q: unit must be Hz with an optional SI prefix", input)
	}
	kilohertz := math.Round(hertz / 1000)
	if hertz < 0 || kilohertz > math.MaxUint32 {
		return 0, fmt.Errorf("frequency %q out of representable range", input)
	}
	return Frequency(kilohertz), nil
}

// isDecimal reports whether s is a non-empty run of ASCII digits.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, character := range s {
		if character < '0' || character > '9' {
			return false
		}
	}
	return true
}
