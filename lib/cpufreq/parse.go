// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// cleanAttribute removes control characters (the trailing newline sysfs
// appends, stray NULs) and surrounding spaces.
func cleanAttribute(raw string) string {
	stripped := strings.Map(func(character rune) rune {
		if unicode.IsControl(character) {
			return -1
		}
		return character
	}, raw)
	return strings.TrimSpace(stripped)
}

// parseFrequencyAttribute parses a kHz attribute. The cleaned content
// must be a plain decimal number that fits in 32 bits.
func parseFrequencyAttribute(raw string) (Frequency, error) {
	text := cleanAttribute(raw)
	if !isDecimal(text) {
		return 0, fmt.Errorf("expected decimal kHz, got %q", text)
	}
	value, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("value %q does not fit in 32 bits", text)
	}
	return Frequency(value), nil
}

// parseGovernorAttribute parses scaling_governor: exactly one token.
func parseGovernorAttribute(raw string) (string, error) {
	fields := strings.Fields(cleanAttribute(raw))
	if len(fields) != 1 {
		return "", fmt.Errorf("expected one governor name, got %d tokens", len(fields))
	}
	return fields[0], nil
}

// parseGovernorList parses scaling_available_governors: one or more
// space-separated names, each appearing once. Order is preserved.
func parseGovernorList(raw string) ([]string, error) {
	fields := strings.Fields(cleanAttribute(raw))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty governor list")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, name := range fields {
		if _, duplicate := seen[name]; duplicate {
			return nil, fmt.Errorf("governor %q listed twice", name)
		}
		seen[name] = struct{}{}
	}
	return fields, nil
}
