// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor implements "mdcr doctor", a read-only check that the
// host exposes cpufreq through sysfs and that mdcr can change it.
package doctor
