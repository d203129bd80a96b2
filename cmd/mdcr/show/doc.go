// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package show implements "mdcr show", the read-only table of per-core
// frequency scaling settings.
package show
