package storage

import (
	"path/filepath"
	"testing"
)

func TestConfigFromEnvOverridePath(t *testing.T) {
	t.Setenv("DAYBOOK_DB_PATH", "/tmp/daybook-custom.db")

	cfg, err := configFromEnv()
	if err != nil {
		t.Fatalf("configFromEnv() unexpected error: %v", err)
	}
	if cfg.Mode != ModeSecure {
		t.Fatalf("cfg.Mode = %q, want %q", cfg.Mode, ModeSecure)
	}
	if cfg.Path != "/tmp/daybook-custom.db" {
		t.Fatalf("cfg.Path = %q, want %q", cfg.Path, "/tmp/daybook-custom.db")
	}
}

func TestConfigFromEnvDefaultsUnderUserConfigDir(t *testing.T) {
	t.Setenv("DAYBOOK_DB_PATH", "")

	cfg, err := configFromEnv()
	if err != nil {
		t.Fatalf("configFromEnv() unexpected error: %v", err)
	}
	if filepath.Base(cfg.Path) != "daybook.db" {
		t.Fatalf("cfg.Path = %q, want a daybook.db under the user config dir", cfg.Path)
	}
}
