// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot saves the frequency settings of every core to a file
// and restores them later, e.g. before and after a benchmark run.
//
// Snapshots are CBOR by default ([codec] with deterministic encoding)
// or indented JSON. [Decode] accepts either, and JSON snapshots may
// carry // and /* */ comments and trailing commas so they can be edited
// by hand.
//
// [Restore] applies a snapshot with two [cpufreq.Apply] passes. The
// first sets the governor and raises each scaling maximum to the larger
// of its saved and current value; the second sets the saved minimum and
// then the saved maximum. Within the fixed governor, min, max order of
// a single batch, this sequence never asks a core for an inverted
// range, whatever the current settings are. Like any batch, a restore
// that fails midway leaves earlier cores restored.
package snapshot
