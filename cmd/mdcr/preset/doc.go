// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package preset implements "mdcr preset", which lists and applies
// named plans: the built-in performance, powersave and full-range
// presets plus profiles from the configuration file.
package preset
