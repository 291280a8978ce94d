package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAYROLL_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != StoreDriverFile || cfg.StorePath != "employees.json" || cfg.RetirementAge != 60 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payroll.yaml")
	content := []byte("store_path: /data/roster.json\nretirement_age: 64\nshutdown_timeout: 3s\nautosave_interval: 1m\nlog_level: debug\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PAYROLL_CONFIG", path)
	t.Setenv("RETIREMENT_AGE", "65")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorePath != "/data/roster.json" {
		t.Fatalf("expected store path from yaml, got %s", cfg.StorePath)
	}
	if cfg.RetirementAge != 65 {
		t.Fatalf("expected env to win, got %d", cfg.RetirementAge)
	}
	if cfg.ShutdownTimeout != 3*time.Second || cfg.AutosaveInterval != time.Minute || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected values %+v", cfg)
	}
}

func TestLoadMissingYAML(t *testing.T) {
	t.Setenv("PAYROLL_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	cfg.StoreDriver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown driver to fail")
	}

	cfg = defaults()
	cfg.StoreDriver = StoreDriverPostgres
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing DATABASE_URL to fail")
	}
	cfg.DatabaseURL = "postgres://localhost/payroll"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg = defaults()
	cfg.Environment = "production"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected production without an encryption key to fail")
	}

	cfg = defaults()
	cfg.RetirementAge = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected retirement age to be checked")
	}
}
