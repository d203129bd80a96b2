// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package render draws core settings and batch reports as tables.
//
// On a terminal the tables are bordered and colored with lipgloss; the
// governor column is tinted by governor and pinned scaling ranges are
// highlighted. When output is piped, or NO_COLOR is set, the same
// columns are written as plain tab-aligned text so scripts can cut(1)
// them. [Styled] makes that decision from the configured color mode.
package render
