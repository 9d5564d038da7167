package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
admin:
  username: admin
  password: prima2024
session:
  secret: s3cret
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Fatalf("expected default backend sqlite, got %s", cfg.Storage.Backend)
	}
	if cfg.Session.TTLHours != 24 {
		t.Fatalf("expected default session TTL 24h, got %d", cfg.Session.TTLHours)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "prima2024")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Fatalf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("DATA_DIR", "/tmp/portfolio")

	cfg, err := Load(writeConfig(t, minimalConfig+`
server:
  port: 5000
storage:
  backend: sqlite
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected env port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "file" || cfg.Storage.DataDir != "/tmp/portfolio" {
		t.Fatalf("expected env storage override, got %+v", cfg.Storage)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	if _, err := Load(writeConfig(t, minimalConfig+`
storage:
  backend: cassandra
`)); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadRequiresCredentialAndSecret(t *testing.T) {
	if _, err := Load(writeConfig(t, `
admin:
  username: admin
session:
  secret: s3cret
`)); err == nil {
		t.Fatal("expected error for missing admin password")
	}

	if _, err := Load(writeConfig(t, `
admin:
  username: admin
  password: prima2024
`)); err == nil {
		t.Fatal("expected error for missing session secret")
	}
}
