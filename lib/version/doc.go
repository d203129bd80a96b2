// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the mdcr binary.
//
// Release builds inject [GitCommit], [GitDirty], [BuildTime], and
// [Version] with -ldflags -X. Plain `go install` builds carry no
// ldflags; for those, [Current] falls back to the VCS stamp the Go
// toolchain embeds (vcs.revision, vcs.modified, vcs.time).
package version
