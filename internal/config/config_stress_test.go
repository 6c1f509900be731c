package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- Hostile Env Input Tests ---

func TestApplyEnvOverrides_HostileServerName(t *testing.T) {
	// Hostile LATINUM_SERVER_NAME values should be stored as-is (no crash).
	hostileNames := []string{
		"'; DROP TABLE endpoints; --",
		"<script>alert(1)</script>",
		"name\r\nX-Injected: evil",
		strings.Repeat("A", 100000), // 100KB name
		"$(whoami)",
		"`id`",
		"name; rm -rf /",
		"name\nname2",
	}

	for _, name := range hostileNames {
		t.Run("name_"+name[:min(len(name), 20)], func(t *testing.T) {
			cfg := NewDefaultConfig()
			t.Setenv("LATINUM_SERVER_NAME", name)
			applyEnvOverrides(cfg)
			// Must not panic; name should be stored as-is
			if cfg.Server.Name != name {
				t.Errorf("expected server name %q, got %q", name, cfg.Server.Name)
			}
		})
	}
}

func TestApplyEnvOverrides_HostilePortValues(t *testing.T) {
	// Non-numeric PORT values must leave the configured port untouched.
	hostilePorts := []string{
		"not-a-number",
		"8080; rm -rf /",
		"8080\n9090",
		strings.Repeat("9", 1000),
		"-",
		"0x1F90",
		"8080.5",
		" 8080",
	}

	for _, port := range hostilePorts {
		t.Run("port_"+port[:min(len(port), 20)], func(t *testing.T) {
			cfg := NewDefaultConfig()
			t.Setenv("PORT", port)
			applyEnvOverrides(cfg)
			if cfg.Server.Port != 8080 {
				t.Errorf("expected default port 8080 to survive %q, got %d", port, cfg.Server.Port)
			}
		})
	}
}

func TestApplyEnvOverrides_NegativePort(t *testing.T) {
	// A negative PORT parses cleanly; Validate is where it gets rejected.
	cfg := NewDefaultConfig()
	t.Setenv("PORT", "-1")
	applyEnvOverrides(cfg)

	if cfg.Server.Port != -1 {
		t.Fatalf("expected parsed port -1, got %d", cfg.Server.Port)
	}
	if issues := cfg.Validate(); len(issues) == 0 {
		t.Error("expected validation issue for negative port")
	}
}

func TestApplyEnvOverrides_HostileLogLevel(t *testing.T) {
	// An unknown log level is stored as-is; the logger falls back internally.
	hostileLevels := []string{
		"LOUD",
		"debug; rm -rf /",
		strings.Repeat("v", 10000),
		"\x00",
	}

	for _, level := range hostileLevels {
		t.Run("level_"+level[:min(len(level), 20)], func(t *testing.T) {
			cfg := NewDefaultConfig()
			t.Setenv("LATINUM_LOG_LEVEL", level)
			applyEnvOverrides(cfg)
			if cfg.Logging.Level != level {
				t.Errorf("expected level %q stored as-is, got %q", level, cfg.Logging.Level)
			}
		})
	}
}

func TestApplyEnvOverrides_EmptyEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "cfg.toml")

	content := `
[server]
name = "file-name"
host = "file-host"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// Empty env vars should NOT override file values
	t.Setenv("HOST", "")
	t.Setenv("LATINUM_SERVER_NAME", "")

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Name != "file-name" {
		t.Errorf("expected file name to survive empty env, got %q", cfg.Server.Name)
	}
	if cfg.Server.Host != "file-host" {
		t.Errorf("expected file host to survive empty env, got %q", cfg.Server.Host)
	}
}

// --- TOML Parsing Edge Cases ---

func TestLoadFromFiles_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "empty.toml")

	if err := os.WriteFile(tomlPath, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed on empty file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected defaults from empty file, got port %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_UnknownSectionIgnored(t *testing.T) {
	// Sections this build doesn't know about must not break loading.
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "extra.toml")

	content := `
[server]
port = 9090

[experimental]
flux_capacitor = true
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_TypeMismatch(t *testing.T) {
	// A string where an integer belongs is a parse error, not a crash.
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "badtype.toml")

	content := `
[server]
port = "eight thousand"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFiles(tomlPath); err == nil {
		t.Error("expected error for type mismatch, got nil")
	}
}

func TestLoadFromFiles_EmptyStringValues(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "blank.toml")

	content := `
[server]
name = ""
host = ""
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	// Explicit empty strings land in the config; Validate flags them.
	issues := cfg.Validate()
	if len(issues) != 2 {
		t.Errorf("expected 2 validation issues for blanked name and host, got %v", issues)
	}
}

func TestLoadFromFiles_PathTraversalName(t *testing.T) {
	// A path-looking server name is just a string; nothing interprets it.
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "path.toml")

	content := `
[server]
name = "../../etc/passwd"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Name != "../../etc/passwd" {
		t.Errorf("expected verbatim name, got %q", cfg.Server.Name)
	}
}
