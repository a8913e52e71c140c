package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.DBMaxOpenConns != Default().DBMaxOpenConns {
		t.Fatalf("expected invalid value to keep default, got %d", cfg.DBMaxOpenConns)
	}
	if !cfg.AutoMigrate || cfg.MetricsEnabled {
		t.Fatalf("expected bool flags to be parsed, got %+v", cfg)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigins)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}

func TestLoadDotEnvKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("STATS_SCHEDULE=@every 5m\nAPP_ENV=development\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("APP_ENV", "staging")
	t.Setenv("STATS_SCHEDULE", "")
	os.Unsetenv("STATS_SCHEDULE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("expected env file to load, got %v", err)
	}
	cfg := Load()
	if cfg.AppEnv != "staging" {
		t.Fatalf("expected existing APP_ENV to win, got %s", cfg.AppEnv)
	}
	if cfg.StatsSchedule != "@every 5m" {
		t.Fatalf("expected schedule from file, got %s", cfg.StatsSchedule)
	}
}
