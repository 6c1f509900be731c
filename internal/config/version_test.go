package config

import (
	"strings"
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	// Without ldflags the identity falls back to development values.
	if got := GetVersion(); got != "dev" {
		t.Errorf("GetVersion() = %q, want dev", got)
	}
	if got := GetBuild(); got != "unknown" {
		t.Errorf("GetBuild() = %q, want unknown", got)
	}
	if got := GetGitCommit(); got != "unknown" {
		t.Errorf("GetGitCommit() = %q, want unknown", got)
	}
}

func TestGetFullVersion_InjectedIdentity(t *testing.T) {
	origVersion, origBuild, origCommit := Version, Build, GitCommit
	t.Cleanup(func() {
		Version, Build, GitCommit = origVersion, origBuild, origCommit
	})

	Version = "1.4.0"
	Build = "2026-08-25T10:00:00Z"
	GitCommit = "abc1234"

	full := GetFullVersion()
	for _, want := range []string{"1.4.0", "2026-08-25T10:00:00Z", "abc1234"} {
		if !strings.Contains(full, want) {
			t.Errorf("GetFullVersion() = %q, missing %q", full, want)
		}
	}
	if !strings.HasPrefix(full, "1.4.0") {
		t.Errorf("GetFullVersion() = %q, want version first", full)
	}
}
