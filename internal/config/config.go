// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"INDUBLOG_DB_PATH" envDefault:"./data/indublog.db"`
	ServerHost string `env:"INDUBLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"INDUBLOG_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"INDUBLOG_ENV" envDefault:"development"`
	LogLevel   string `env:"INDUBLOG_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"INDUBLOG_REDIS_URL"`                           // Optional Redis URL for distributed caching
	CachePrefix  string `env:"INDUBLOG_CACHE_PREFIX" envDefault:"indublog:"` // Redis key prefix
	CacheTTL     int    `env:"INDUBLOG_CACHE_TTL" envDefault:"300"`          // Feed cache TTL in seconds
	CacheMaxSize int    `env:"INDUBLOG_CACHE_MAX_SIZE" envDefault:"10000"`   // Max memory cache entries

	// Seeding configuration
	DemoSeed bool `env:"INDUBLOG_DEMO_SEED" envDefault:"false"` // Seed demo posts, users and authors on startup
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SlogLevel maps the configured log level string to a slog.Level.
// Unknown values fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("INDUBLOG_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	return cfg, nil
}
