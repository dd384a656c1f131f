// Copyright (c) 2025-2026 VK WebCraft
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vkwebcraft/indublog/internal/model"
	"github.com/vkwebcraft/indublog/internal/store"
)

const feedKeyPrefix = "feed:"

// FeedCache fronts the public read path with a Cacher. Published post
// pages and the category index are the hottest queries and change only
// on moderation decisions, so they are cached and invalidated as a
// group.
type FeedCache struct {
	cache   Cacher
	queries *store.Queries
	ttl     time.Duration
}

// NewFeedCache creates a FeedCache with the given backend and TTL.
func NewFeedCache(c Cacher, queries *store.Queries, ttl time.Duration) *FeedCache {
	return &FeedCache{cache: c, queries: queries, ttl: ttl}
}

// PublishedPosts returns a page of the published feed, newest first.
func (f *FeedCache) PublishedPosts(ctx context.Context, limit, offset int64) ([]model.BlogPost, error) {
	key := fmt.Sprintf("%spublished:%d:%d", feedKeyPrefix, limit, offset)

	var posts []model.BlogPost
	if hit, err := f.get(ctx, key, &posts); err != nil {
		return nil, err
	} else if hit {
		return posts, nil
	}

	posts, err := f.queries.ListPublishedBlogPosts(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	f.put(ctx, key, posts)
	return posts, nil
}

// Categories returns the published category index.
func (f *FeedCache) Categories(ctx context.Context) ([]store.CategoryCount, error) {
	key := feedKeyPrefix + "categories"

	var categories []store.CategoryCount
	if hit, err := f.get(ctx, key, &categories); err != nil {
		return nil, err
	} else if hit {
		return categories, nil
	}

	categories, err := f.queries.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	f.put(ctx, key, categories)
	return categories, nil
}

// Invalidate drops every feed entry. Called after any moderation
// decision that changes what the public sees.
func (f *FeedCache) Invalidate(ctx context.Context) {
	_ = f.cache.DeleteByPrefix(ctx, feedKeyPrefix)
}

// get unmarshals a cached value into dst. Returns (true, nil) on a hit.
// Backend failures are treated as misses so the feed stays readable
// when the cache is down.
func (f *FeedCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := f.cache.Get(ctx, key)
	if err != nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, nil
	}
	return true, nil
}

func (f *FeedCache) put(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = f.cache.Set(ctx, key, data, f.ttl)
}
