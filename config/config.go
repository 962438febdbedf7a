// Package config loads bookshelf settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BACKEND_MEMORY  = "memory"
	BACKEND_SQLITE  = "sqlite"
	BACKEND_REDIS   = "redis"
	BACKEND_ELASTIC = "elastic"
)

type Config struct {
	Port             string
	Backend          string
	CatalogKey       string
	SQLitePath       string
	RedisURL         string
	ElasticURL       string
	ElasticIndex     string
	ResetOnMalformed bool
	ActivityBackend  string
	ActivityMax      int
	Logging          LoggingConfig
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            port(os.Getenv("PORT")),
		Backend:         strings.ToLower(getEnv("CATALOG_BACKEND", BACKEND_SQLITE)),
		CatalogKey:      getEnv("CATALOG_KEY", "allBooks"),
		SQLitePath:      getEnv("SQLITE_PATH", "data/bookshelf.db"),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		ElasticURL:      getEnv("ELASTIC_URL", "http://localhost:9200"),
		ElasticIndex:    getEnv("ELASTIC_INDEX", "bookshelf"),
		ActivityBackend: strings.ToLower(getEnv("ACTIVITY_BACKEND", BACKEND_MEMORY)),
		ActivityMax:     3,
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}

	switch cfg.Backend {
	case BACKEND_MEMORY, BACKEND_SQLITE, BACKEND_REDIS, BACKEND_ELASTIC:
	default:
		return nil, fmt.Errorf("CATALOG_BACKEND: unsupported backend %q", cfg.Backend)
	}

	switch cfg.ActivityBackend {
	case BACKEND_MEMORY, BACKEND_REDIS:
	default:
		return nil, fmt.Errorf("ACTIVITY_BACKEND: unsupported backend %q", cfg.ActivityBackend)
	}

	if raw := strings.TrimSpace(os.Getenv("CATALOG_RESET_ON_MALFORMED")); raw != "" {
		reset, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("CATALOG_RESET_ON_MALFORMED: %w", err)
		}
		cfg.ResetOnMalformed = reset
	}

	if raw := strings.TrimSpace(os.Getenv("ACTIVITY_MAX")); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("ACTIVITY_MAX: %w", err)
		}
		if max < 1 {
			return nil, fmt.Errorf("ACTIVITY_MAX: must be positive, got %d", max)
		}
		cfg.ActivityMax = max
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func port(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ":8080"
	}
	if strings.Contains(value, ":") {
		return value
	}
	return ":" + value
}
