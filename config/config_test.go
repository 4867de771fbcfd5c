package config

import (
	"os"
	"path/filepath"
	"testing"

	"clusterfile/catalog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `logging:
  level: debug
  format: text
loader:
  unknown_groups: error
  skip_groups: [scratch]
  parallel: 4
units:
  aliases:
    deg_J2000: degree
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Loader.UnknownGroups != "error" || cfg.Loader.Parallel != 4 {
		t.Fatalf("unexpected loader config: %+v", cfg.Loader)
	}
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if _, err := reg.Resolve("deg_J2000"); err != nil {
		t.Fatalf("configured alias missing: %v", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "logign:\n  level: debug\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	path := writeConfig(t, "loader:\n  unknown_groups: panic\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected policy validation error")
	}
}

func TestLoadRejectsBadAliasTarget(t *testing.T) {
	path := writeConfig(t, "units:\n  aliases:\n    x: cubits\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected alias target error")
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	opts, err := cfg.LoaderOptions()
	if err != nil {
		t.Fatalf("loader options: %v", err)
	}
	if len(opts) == 0 {
		t.Fatal("expected at least the policy and registry options")
	}
}

func TestLoaderOptionsParsePolicy(t *testing.T) {
	cfg := Default()
	cfg.Loader.UnknownGroups = ""
	if _, err := catalog.ParseUnknownGroupPolicy(cfg.Loader.UnknownGroups); err != nil {
		t.Fatalf("empty policy must default: %v", err)
	}
}
