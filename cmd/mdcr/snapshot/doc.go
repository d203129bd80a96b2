// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot implements "mdcr snapshot", which saves the live
// settings of every core to a file and restores them later, typically
// around a benchmark or a power-sensitive job.
package snapshot
