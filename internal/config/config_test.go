package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.SQLitePath != "data/stockdesk.db" {
		t.Errorf("unexpected default db path: %s", cfg.Database.SQLitePath)
	}
	if cfg.Schedule.UpdateCron == "" {
		t.Error("expected default update cron")
	}
	if cfg.Render.TailRows != 20 {
		t.Errorf("expected default tail rows 20, got %d", cfg.Render.TailRows)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  sqlite_path: /tmp/custom.db
portfolio:
  ledger_file: /tmp/ledger.yaml
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SQLITE_PATH", "/tmp/env.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.SQLitePath != "/tmp/env.db" {
		t.Errorf("env override should win, got %s", cfg.Database.SQLitePath)
	}
	if cfg.Portfolio.LedgerFile != "/tmp/ledger.yaml" {
		t.Errorf("file value should apply, got %s", cfg.Portfolio.LedgerFile)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- bad"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
