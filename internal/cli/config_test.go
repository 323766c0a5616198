package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runstack.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
manifest = "deps.toml"
dir = "sql"
rename = ".sql=.txt"
continue_on_failure = true
listen = ":9090"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Manifest != "deps.toml" {
		t.Errorf("Manifest = %q, want deps.toml", cfg.Manifest)
	}
	if cfg.Dir != "sql" {
		t.Errorf("Dir = %q, want sql", cfg.Dir)
	}
	if !cfg.ContinueOnFailure {
		t.Error("ContinueOnFailure = false, want true")
	}
	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q, want :9090", cfg.Listen)
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeConfig(t, `manifset = "typo.json"`)

	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("loadConfig() error = nil, want unknown key failure")
	}
	if !strings.Contains(err.Error(), "manifset") {
		t.Errorf("error does not name the key: %v", err)
	}
}

func TestResolveConfig_NoFile(t *testing.T) {
	cfg, err := resolveConfig("")
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("resolveConfig() = %+v, want zero config", cfg)
	}
}

func TestResolveConfig_MissingExplicitFile(t *testing.T) {
	_, err := resolveConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("resolveConfig() error = nil, want failure for explicit missing file")
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		flag, cfg, def, want string
	}{
		{"f", "c", "d", "f"},
		{"", "c", "d", "c"},
		{"", "", "d", "d"},
	}
	for _, tt := range tests {
		if got := value(tt.flag, tt.cfg, tt.def); got != tt.want {
			t.Errorf("value(%q, %q, %q) = %q, want %q", tt.flag, tt.cfg, tt.def, got, tt.want)
		}
	}
}
