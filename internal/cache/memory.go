// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is a thread-safe in-memory Cacher implementation.
type MemoryCache struct {
	mu         sync.RWMutex
	data       map[string]memoryEntry
	defaultTTL time.Duration
	maxSize    int // Maximum number of entries (0 = unlimited)
	stopCh     chan struct{}
	closed     atomic.Bool

	// Statistics
	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
	size   atomic.Int64 // Approximate size in bytes
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCacheOptions configures the memory cache.
type MemoryCacheOptions struct {
	DefaultTTL      time.Duration
	MaxSize         int           // Maximum number of entries (0 = unlimited)
	CleanupInterval time.Duration // Interval for expired entry cleanup (0 = no cleanup)
}

// NewMemoryCache creates a new memory cache with the given options.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	c := &MemoryCache{
		data:       make(map[string]memoryEntry),
		defaultTTL: opts.DefaultTTL,
		maxSize:    opts.MaxSize,
		stopCh:     make(chan struct{}),
	}

	if opts.CleanupInterval > 0 {
		go c.cleanupLoop(opts.CleanupInterval)
	}

	return c
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		if ok {
			c.deleteKey(key)
		}
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}

	c.hits.Add(1)
	// Return a copy to prevent mutation
	result := make([]byte, len(entry.value))
	copy(result, entry.value)
	return result, nil
}

// Set stores a value in the cache with the specified TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.mu.Lock()
	if c.maxSize > 0 && len(c.data) >= c.maxSize {
		// Make room by dropping expired entries before overwriting
		now := time.Now()
		for k, e := range c.data {
			if now.After(e.expiresAt) {
				c.size.Add(-int64(len(e.value)))
				delete(c.data, k)
			}
		}
	}
	if old, ok := c.data[key]; ok {
		c.size.Add(-int64(len(old.value)))
	}
	c.data[key] = memoryEntry{value: valueCopy, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()

	c.size.Add(int64(len(valueCopy)))
	c.sets.Add(1)
	return nil
}

// Delete removes a key from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	c.deleteKey(key)
	return nil
}

// DeleteByPrefix removes all keys starting with the given prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	c.mu.Lock()
	for k, e := range c.data {
		if strings.HasPrefix(k, prefix) {
			c.size.Add(-int64(len(e.value)))
			delete(c.data, k)
		}
	}
	c.mu.Unlock()
	return nil
}

// Clear removes all entries from the cache.
func (c *MemoryCache) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	c.mu.Lock()
	c.data = make(map[string]memoryEntry)
	c.mu.Unlock()
	c.size.Store(0)
	return nil
}

// Has checks if a key exists in the cache (and is not expired).
func (c *MemoryCache) Has(_ context.Context, key string) (bool, error) {
	if c.closed.Load() {
		return false, ErrCacheClosed
	}

	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.deleteKey(key)
		return false, nil
	}
	return true, nil
}

// Close stops the cleanup goroutine and releases resources.
func (c *MemoryCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns current cache statistics.
func (c *MemoryCache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	c.mu.RLock()
	items := len(c.data)
	c.mu.RUnlock()

	return CacheStats{
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Items:   items,
		HitRate: hitRate,
		Size:    c.size.Load(),
	}
}

// ResetStats resets the cache statistics.
func (c *MemoryCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.sets.Store(0)
}

func (c *MemoryCache) deleteKey(key string) {
	c.mu.Lock()
	if e, ok := c.data[key]; ok {
		c.size.Add(-int64(len(e.value)))
		delete(c.data, key)
	}
	c.mu.Unlock()
}

// cleanupLoop periodically removes expired entries.
func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.data {
				if now.After(e.expiresAt) {
					c.size.Add(-int64(len(e.value)))
					delete(c.data, k)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

// Ensure MemoryCache implements Cacher and StatsProvider.
var (
	_ Cacher        = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
