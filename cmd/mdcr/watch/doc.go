// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package watch implements "mdcr watch", a full-screen live view of
// per-core governors and running frequencies.
package watch
