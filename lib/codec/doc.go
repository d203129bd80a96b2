// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration used for mediocore's
// binary files (settings snapshots).
//
// JSON is used wherever a human or another tool reads the output: the
// --json flag, hand-edited snapshots. CBOR is the default on-disk
// snapshot format because it is compact and, with Core Deterministic
// Encoding (RFC 8949 §4.2), byte-for-byte reproducible: the same
// settings always encode to the same bytes, so snapshot files can be
// compared with cmp(1).
//
// Types shared with JSON carry only `json` struct tags; fxamacker/cbor
// reads them when `cbor` tags are absent, so one tag names the field
// in both formats.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
