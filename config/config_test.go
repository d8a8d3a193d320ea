package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestConfig(t *testing.T, yaml string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTestConfig(t, `
session:
  secret: "abc"
database:
  path: "`+filepath.Join(t.TempDir(), "app.db")+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Redis.Address() != "localhost:6379" {
		t.Fatalf("default redis address: got %q", cfg.Redis.Address())
	}
	if cfg.Session.TTLHours != 24 || cfg.Session.RememberDays != 30 {
		t.Fatalf("default session ttls: %+v", cfg.Session)
	}
}

func TestLoadEnvOverridesFileValues(t *testing.T) {
	path := writeTestConfig(t, `
server:
  port: 8080
session:
  secret: "from-file"
database:
  path: "`+filepath.Join(t.TempDir(), "app.db")+`"
`)

	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.Secret != "from-env" {
		t.Fatalf("env secret not applied: got %q", cfg.Session.Secret)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("env port not applied: got %d", cfg.Server.Port)
	}
}

func TestLoadRejectsEmptySecret(t *testing.T) {
	path := writeTestConfig(t, `
database:
  path: "`+filepath.Join(t.TempDir(), "app.db")+`"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty session secret")
	}
}
