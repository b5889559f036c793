package config

import (
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/teamfeed/internal/kvstore"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("STORE_PATH", "")
	t.Setenv("SEED_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Store defaults
	if cfg.StoreDriver != kvstore.DriverPebble {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, kvstore.DriverPebble)
	}
	if cfg.StorePath != "./data/teamfeed" {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, "./data/teamfeed")
	}
	if cfg.SeedFile != "" {
		t.Errorf("SeedFile = %q, want empty", cfg.SeedFile)
	}

	// Composer defaults
	if cfg.ComposerUserID != "u1" {
		t.Errorf("ComposerUserID = %q, want %q", cfg.ComposerUserID, "u1")
	}
	if cfg.ComposerUserName != "Binarykeeda" {
		t.Errorf("ComposerUserName = %q, want %q", cfg.ComposerUserName, "Binarykeeda")
	}
	if cfg.ComposerTeam != "Platform" {
		t.Errorf("ComposerTeam = %q, want %q", cfg.ComposerTeam, "Platform")
	}

	// Rate limit defaults
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 120)
	}
	if cfg.RateLimitCompose != 10 {
		t.Errorf("RateLimitCompose = %d, want %d", cfg.RateLimitCompose, 10)
	}

	// Server defaults
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, 30*time.Second)
	}
	if cfg.CORSAllowedOrigin != "http://localhost:4200" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "http://localhost:4200")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("STORE_PATH", "/tmp/teamfeed.db")
	t.Setenv("SEED_FILE", "seed.yaml")
	t.Setenv("COMPOSER_USER_ID", "u9")
	t.Setenv("COMPOSER_USER_NAME", "Tester")
	t.Setenv("COMPOSER_TEAM", "QA")
	t.Setenv("RATE_LIMIT_GENERAL", "200")
	t.Setenv("RATE_LIMIT_COMPOSE", "5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://feed.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.StoreDriver != kvstore.DriverSQLite {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, kvstore.DriverSQLite)
	}
	if cfg.StorePath != "/tmp/teamfeed.db" {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, "/tmp/teamfeed.db")
	}
	if cfg.SeedFile != "seed.yaml" {
		t.Errorf("SeedFile = %q, want %q", cfg.SeedFile, "seed.yaml")
	}
	if cfg.ComposerUserID != "u9" || cfg.ComposerUserName != "Tester" || cfg.ComposerTeam != "QA" {
		t.Errorf("composer = %s/%s/%s, want u9/Tester/QA", cfg.ComposerUserID, cfg.ComposerUserName, cfg.ComposerTeam)
	}
	if cfg.RateLimitGeneral != 200 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 200)
	}
	if cfg.RateLimitCompose != 5 {
		t.Errorf("RateLimitCompose = %d, want %d", cfg.RateLimitCompose, 5)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "9090")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, 5*time.Second)
	}
	if cfg.CORSAllowedOrigin != "https://feed.example.com" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "https://feed.example.com")
	}
}

func TestLoad_InvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("RATE_LIMIT_GENERAL", "lots")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 120)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, 30*time.Second)
	}
}

func TestLoad_UnsupportedDriver_ReturnsError(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Errorf("error should mention STORE_DRIVER, got: %v", err)
	}
}

func TestLoad_BlankPathForPersistentDriver_ReturnsError(t *testing.T) {
	t.Setenv("STORE_DRIVER", "pebble")
	t.Setenv("STORE_PATH", "   ")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for blank STORE_PATH")
	}
	if !strings.Contains(err.Error(), "STORE_PATH") {
		t.Errorf("error should mention STORE_PATH, got: %v", err)
	}
}

func TestLoad_MemoryDriverIgnoresPath(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORE_PATH", "   ")

	if _, err := Load(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
