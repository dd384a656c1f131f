// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the caching layer behind the public feed:
// an in-process LRU store for single-node deploys and a Redis adapter
// for deployments that share state across instances.
package cache

import (
	"context"
	"time"
)

// Cacher is the contract both backends satisfy. Values are opaque
// byte slices so the same interface works over the Redis wire.
// Implementations must be safe for concurrent use.
type Cacher interface {
	// Get returns the stored value, or ErrCacheMiss when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl means the backend's
	// default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key starting with prefix. Used for
	// feed invalidation, where one publish touches several cached lists.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Clear drops all entries.
	Clear(ctx context.Context) error

	// Has reports whether key holds a live entry.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases backend resources. The cache is unusable after.
	Close() error
}

// CacheStats is a point-in-time snapshot of cache activity.
type CacheStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hit_rate"`
	Size    int64   `json:"size_bytes,omitempty"`
}

// StatsProvider is implemented by backends that count their traffic.
type StatsProvider interface {
	Stats() CacheStats
	ResetStats()
}

// Error is a sentinel error string for cache conditions.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrCacheMiss reports an absent or expired key.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed reports use after Close.
	ErrCacheClosed Error = "cache closed"
)
