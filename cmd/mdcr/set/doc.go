// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package set implements "mdcr set", which changes the governor and
// scaling range of selected cores in one ordered batch.
package set
