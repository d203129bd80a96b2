// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package cpufreq discovers and mutates the per-core frequency scaling
// settings that Linux exposes under /sys/devices/system/cpu/cpuN/cpufreq/.
//
// # Discovery
//
// [Discover] (or [DiscoverFrom] with an explicit root) lists the cpuN
// directories and reads six attributes from each core's cpufreq
// subdirectory: the hardware bounds (cpuinfo_min_freq, cpuinfo_max_freq),
// the scaling bounds (scaling_min_freq, scaling_max_freq), the active
// governor, and the available governors. Parsing is strict: a value that
// is not a plain decimal number is rejected rather than scavenged for
// digits, and a record whose values contradict each other is rejected
// as a whole. Discovery is all-or-nothing and never writes.
//
// # Mutation
//
// A [Core] holds the settings read at discovery. Its setters
// ([Core.SetGovernor], [Core.SetScalingMin], [Core.SetScalingMax])
// validate the request against the hardware bounds and the current
// scaling bounds, write the attribute through the core's [Store], and
// only then update the in-memory value. A rejected or failed write
// leaves the record exactly as it was.
//
// Because the kernel checks each write against the values already in
// place, a request to move both scaling bounds only succeeds in one
// order. [Apply] applies a [Plan] to many cores in a fixed order: every
// governor change first, then every minimum, then every maximum, each
// step in ascending core number. The first failure stops the batch and
// nothing already written is undone; the returned [Report] lists what
// was applied.
//
// All frequencies are in kHz, the unit sysfs uses. [Frequency] formats
// them with SI prefixes and [ParseFrequency] accepts either bare kHz or
// a unit suffix such as "2.5GHz".
//
// Nothing here is safe for concurrent use. Each call to Discover
// returns fresh records owned by the caller; nothing is cached.
package cpufreq
