// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package watchui is the bubbletea model behind "mdcr watch": a live,
// periodically refreshed table of per-core governors and running
// frequencies.
//
// The model never touches sysfs itself. It calls a [Sampler] on every
// refresh, so tests drive it with canned samples and the command
// wires it to discovery.
package watchui
