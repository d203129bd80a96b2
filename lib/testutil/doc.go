// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for mediocore packages.
//
// [WriteCPUTree] builds a synthetic /sys/devices/system/cpu tree under a
// test's temporary directory so discovery runs against real files
// without touching the host. [DefaultCPU] returns a fixture with the
// values most tests start from.
//
// [RecordingStore] is an in-memory attribute store that records every
// write into a [WriteLog]. Several stores can share one log, which lets
// tests assert the global order of writes across cores. Failures are
// injected per attribute.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no mediocore-internal dependencies, so any package's
// internal tests may import it.
package testutil
