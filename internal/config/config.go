package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hitoshi/teamfeed/internal/kvstore"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Store
	StoreDriver kvstore.Driver
	StorePath   string
	SeedFile    string

	// Composer（投稿者として扱う固定ユーザー）
	ComposerUserID   string
	ComposerUserName string
	ComposerTeam     string

	// Rate Limit
	RateLimitGeneral int
	RateLimitCompose int

	// Logging
	LogLevel string

	// Server
	ServerPort      string
	ShutdownTimeout time.Duration

	// CORS（カンマ区切りで複数指定可。"*" は全オリジン）
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// ストアドライバが不明な場合や、永続ドライバでパスが空の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.StoreDriver = kvstore.Driver(strings.ToLower(getEnvString("STORE_DRIVER", string(kvstore.DriverPebble))))
	switch cfg.StoreDriver {
	case kvstore.DriverMemory, kvstore.DriverPebble, kvstore.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER: %q (want memory, pebble or sqlite)", cfg.StoreDriver)
	}

	cfg.StorePath = getEnvString("STORE_PATH", "./data/teamfeed")
	if cfg.StoreDriver != kvstore.DriverMemory && strings.TrimSpace(cfg.StorePath) == "" {
		return nil, fmt.Errorf("STORE_PATH is required for driver %q", cfg.StoreDriver)
	}
	cfg.SeedFile = os.Getenv("SEED_FILE")

	// Optional fields with defaults
	cfg.ComposerUserID = getEnvString("COMPOSER_USER_ID", "u1")
	cfg.ComposerUserName = getEnvString("COMPOSER_USER_NAME", "Binarykeeda")
	cfg.ComposerTeam = getEnvString("COMPOSER_TEAM", "Platform")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitCompose = getEnvInt("RATE_LIMIT_COMPOSE", 10)
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:4200")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
