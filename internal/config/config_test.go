package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "PLANEJAO_STORAGE", "PORT", "PROJECTS_TABLE", "MEMBERS_TABLE",
		"PLANEJAO_BASIC_AUTH_USER", "PLANEJAO_BASIC_AUTH_PASSWORD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.Storage != StorageDynamoDB {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DynamoDB.ProjectsTable != "projects" || cfg.DynamoDB.MembersTable != "members" {
		t.Fatalf("unexpected table defaults: %+v", cfg.DynamoDB)
	}
	if cfg.BasicAuthEnabled() {
		t.Fatalf("expected basic auth disabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PLANEJAO_STORAGE", "sqlite")
	t.Setenv("PLANEJAO_BASIC_AUTH_USER", "user")
	t.Setenv("PLANEJAO_BASIC_AUTH_PASSWORD", "password")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.Storage != StorageSQLite || !cfg.BasicAuthEnabled() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_InvalidStorage(t *testing.T) {
	t.Setenv("PLANEJAO_STORAGE", "mongo")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported storage")
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "http")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("PLANEJAO_API_TIMEOUT", "3s")
	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.Timeout)
	}
}
