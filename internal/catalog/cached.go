// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package catalog

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodreel/internal/cache"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
)

var _ Catalog = (*CachedClient)(nil)

// CachedClient is a read-through cache in front of a Catalog.
// Only successful responses are stored.
type CachedClient struct {
	next  Catalog
	store cache.Store
	ttl   time.Duration
}

// NewCachedClient wraps next with store. Entries live for ttl.
func NewCachedClient(next Catalog, store cache.Store, ttl time.Duration) *CachedClient {
	return &CachedClient{next: next, store: store, ttl: ttl}
}

// through serves key from the cache or calls fetch and stores its result.
func through[T any](c *CachedClient, operation, key string, fetch func() (T, error)) (T, error) {
	if data, ok := c.store.Get(key); ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CatalogCacheHits.WithLabelValues(operation).Inc()
			return cached, nil
		}
		logging.Warn().Str("operation", operation).Msg("Discarding undecodable catalog cache entry")
	}
	metrics.CatalogCacheMisses.WithLabelValues(operation).Inc()

	result, err := fetch()
	if err != nil {
		return result, err
	}
	if data, err := json.Marshal(result); err == nil {
		c.store.Set(key, data, c.ttl)
	}
	return result, nil
}

// DiscoverByGenres serves a cached discover page when available.
func (c *CachedClient) DiscoverByGenres(ctx context.Context, ids []int, page, limit int) ([]models.Movie, error) {
	key := cache.GenerateKey("discover", []interface{}{ids, page, limit})
	return through(c, "discover", key, func() ([]models.Movie, error) {
		return c.next.DiscoverByGenres(ctx, ids, page, limit)
	})
}

// Search serves a cached search page when available.
func (c *CachedClient) Search(ctx context.Context, query string, page int) ([]models.Movie, error) {
	key := cache.GenerateKey("search", []interface{}{query, page})
	return through(c, "search", key, func() ([]models.Movie, error) {
		return c.next.Search(ctx, query, page)
	})
}

// Details serves a cached movie when available.
func (c *CachedClient) Details(ctx context.Context, id int64) (*models.Movie, error) {
	key := cache.GenerateKey("details", id)
	return through(c, "details", key, func() (*models.Movie, error) {
		return c.next.Details(ctx, id)
	})
}

// Popular serves a cached popular page when available.
func (c *CachedClient) Popular(ctx context.Context, page, limit int) ([]models.Movie, error) {
	key := cache.GenerateKey("popular", []interface{}{page, limit})
	return through(c, "popular", key, func() ([]models.Movie, error) {
		return c.next.Popular(ctx, page, limit)
	})
}

// Trending serves the cached trending list when available.
func (c *CachedClient) Trending(ctx context.Context, limit int) ([]models.Movie, error) {
	key := cache.GenerateKey("trending", limit)
	return through(c, "trending", key, func() ([]models.Movie, error) {
		return c.next.Trending(ctx, limit)
	})
}
