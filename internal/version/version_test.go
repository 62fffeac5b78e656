// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import (
	"strings"
	"testing"
)

func TestStringDefaults(t *testing.T) {
	s := String()
	if !strings.Contains(s, Version) {
		t.Errorf("String() = %q, missing version %q", s, Version)
	}
	if !strings.Contains(s, GitCommit) {
		t.Errorf("String() = %q, missing commit %q", s, GitCommit)
	}
	if !strings.Contains(s, BuildTime) {
		t.Errorf("String() = %q, missing build time %q", s, BuildTime)
	}
}

func TestStringInjected(t *testing.T) {
	origVersion, origCommit, origBuild := Version, GitCommit, BuildTime
	defer func() { Version, GitCommit, BuildTime = origVersion, origCommit, origBuild }()

	Version = "v1.2.3"
	GitCommit = "abc1234"
	BuildTime = "2026-01-30T12:00:00Z"

	got := String()
	want := "v1.2.3 (commit abc1234, built 2026-01-30T12:00:00Z)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
