// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package cpufreq

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ParseCoreList parses a kernel-style CPU list such as "0,2-4,7" into
// sorted, distinct core numbers. Ranges are inclusive.
func ParseCoreList(input string) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty list", ErrInvalidSelection)
	}

	var numbers []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		low, high, isRange := strings.Cut(part, "-")
		first, err := parseCoreIndex(low)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if last, err = parseCoreIndex(high); err != nil {
				return nil, err
			}
			if last < first {
				return nil, fmt.Errorf("%w: descending range %q", ErrInvalidSelection, part)
			}
		}
		for number := first; number <= last; number++ {
			numbers = append(numbers, number)
		}
	}

	slices.Sort(numbers)
	return slices.Compact(numbers), nil
}

// FormatCoreList is the inverse of [ParseCoreList], collapsing runs
// into ranges.
func FormatCoreList(numbers []int) string {
	sorted := slices.Clone(numbers)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var parts []string
	for index := 0; index < len(sorted); {
		end := index
		for end+1 < len(sorted) && sorted[end+1] == sorted[end]+1 {
			end++
		}
		if end == index {
			parts = append(parts, strconv.Itoa(sorted[index]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", sorted[index], sorted[end]))
		}
		index = end + 1
	}
	return strings.Join(parts, ",")
}

// maxCoreNumber bounds parsed core numbers well above any kernel's
// NR_CPUS so a typo cannot expand into a huge range.
const maxCoreNumber = 1 << 16

func parseCoreIndex(text string) (int, error) {
	text = strings.TrimSpace(text)
	if !isDecimal(text) {
		return 0, fmt.Errorf("%w: %q is not a core number", ErrInvalidSelection, text)
	}
	number, err := strconv.Atoi(text)
	if err != nil || number >= maxCoreNumber {
		return 0, fmt.Errorf("%w: core number %q out of range", ErrInvalidSelection, text)
	}
	return number, nil
}
