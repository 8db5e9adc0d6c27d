// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/api"
	"github.com/damon-houk/exchange-rate-overview/internal/infrastructure/logger"
	"github.com/joho/godotenv"
)

// CacheBackend selects where fetched rates are kept between runs
type CacheBackend string

const (
	// FileBackend keeps one {from}_{to}_{date}.cached file per rate
	FileBackend CacheBackend = "file"
	// BadgerBackend keeps rates in an embedded BadgerDB under CacheDir
	BadgerBackend CacheBackend = "badger"
	// MemoryBackend keeps rates for the lifetime of the process only
	MemoryBackend CacheBackend = "memory"
)

// Config holds application configuration
type Config struct {
	APIBaseURL   string
	APIKey       string
	CacheBackend CacheBackend
	CacheDir     string
	LogLevel     logger.Level
	Port         int
}

// Load reads .env from the working directory (when present) and then the environment.
// defaultLevel is used when LOG_LEVEL is unset.
func Load(defaultLevel logger.Level) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv(defaultLevel)
}

// FromEnv builds the configuration from environment variables only
func FromEnv(defaultLevel logger.Level) (Config, error) {
	cfg := Config{
		APIBaseURL:   api.DefaultBaseURL,
		CacheBackend: FileBackend,
		CacheDir:     ".",
		LogLevel:     defaultLevel,
		Port:         8080,
	}

	if v := getenv("EXCHANGE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	cfg.APIKey = getenv("EXCHANGE_API_KEY")

	if v := getenv("CACHE_BACKEND"); v != "" {
		backend := CacheBackend(strings.ToLower(v))
		switch backend {
		case FileBackend, BadgerBackend, MemoryBackend:
			cfg.CacheBackend = backend
		default:
			return Config{}, fmt.Errorf("invalid CACHE_BACKEND %q: expected file, badger or memory", v)
		}
	}

	if v := getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		level, err := logger.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}

	return cfg, nil
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
