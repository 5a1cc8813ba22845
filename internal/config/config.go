package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIKey      string
	APIURL      string
	Port        string
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
	LogLevel    slog.Level
}

var ErrMissingAPIKey = errors.New("DATAGEN_API_KEY not configured: set it in the environment or in a .env file")

func Load() (Config, error) {
	// .env es opcional; en producción las vars vienen del entorno
	_ = godotenv.Load()

	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	ttl := 5 * time.Minute
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			ttl = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	cfg := Config{
		APIKey:      os.Getenv("DATAGEN_API_KEY"),
		APIURL:      envOr("DATAGEN_API_URL", "https://api.datagen.dev"),
		Port:        envOr("PORT", "8080"),
		HTTPTimeout: to,
		CacheTTL:    ttl,
		LogLevel:    lvl,
	}
	if cfg.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	return cfg, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
