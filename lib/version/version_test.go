// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestApplyBuildSettings_FillsUnsetFields(t *testing.T) {
	details := Details{Commit: "unknown", BuildTime: "unknown"}
	applyBuildSettings(&details, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-02-10T08:00:00Z"},
	})

	if details.Commit != "0123456789ab" {
		t.Errorf("Commit = %q, want 0123456789ab", details.Commit)
	}
	if !details.Dirty {
		t.Error("Dirty = false, want true")
	}
	if details.BuildTime != "2026-02-10T08:00:00Z" {
		t.Errorf("BuildTime = %q, want 2026-02-10T08:00:00Z", details.BuildTime)
	}
}

func TestApplyBuildSettings_LdflagsWin(t *testing.T) {
	details := Details{Commit: "abc1234", BuildTime: "2026-01-01T00:00:00Z"}
	applyBuildSettings(&details, []debug.BuildSetting{
		{Key: "vcs.revision", Value: "ffffffffffff"},
		{Key: "vcs.time", Value: "2020-01-01T00:00:00Z"},
	})
	if details.Commit != "abc1234" || details.BuildTime != "2026-01-01T00:00:00Z" {
		t.Errorf("ldflags values overwritten: %+v", details)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.Contains(full, Version) || !strings.Contains(full, "Go: go") {
		t.Errorf("Full() = %q, want version and Go toolchain", full)
	}
}
