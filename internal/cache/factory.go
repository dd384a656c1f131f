// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import "time"

// Config selects and tunes the cache backend.
type Config struct {
	// Type picks the backend: "memory" (default) or "redis".
	Type string

	// RedisURL connects the redis backend, e.g. redis://localhost:6379/0.
	RedisURL string

	// Prefix namespaces keys on a shared Redis instance.
	Prefix string

	// DefaultTTL applies to Set calls with a zero ttl.
	DefaultTTL time.Duration

	// MaxSize caps the memory backend's entry count; 0 means unbounded.
	MaxSize int

	// CleanupInterval is how often the memory backend sweeps expired entries.
	CleanupInterval time.Duration
}

// DefaultConfig is a memory cache sized for a single-node deploy.
func DefaultConfig() Config {
	return Config{
		Type:            "memory",
		DefaultTTL:      time.Hour,
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}
}

// NewCache builds the backend cfg asks for. An empty RedisURL falls
// back to the memory backend even when Type says redis.
func NewCache(cfg Config) (Cacher, error) {
	if cfg.Type == "redis" && cfg.RedisURL != "" {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		if cfg.DefaultTTL > 0 {
			opts.DefaultTTL = cfg.DefaultTTL
		}
		return NewRedisCache(opts)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	}), nil
}

// NewDefaultCache is NewCache(DefaultConfig()) without the error,
// which the memory backend never returns.
func NewDefaultCache() Cacher {
	c, _ := NewCache(DefaultConfig())
	return c
}
