// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that stamps records with the current time (snapshots) takes a
// Clock instead of calling time.Now, so tests can assert exact
// timestamps:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	snap := snapshot.Capture(cores, root, c)
//	c.Advance(time.Minute)
package clock
