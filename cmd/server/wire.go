// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package main

import (
	"io"
	"time"

	"github.com/tomtom215/moodreel/internal/cache"
	"github.com/tomtom215/moodreel/internal/catalog"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/inference"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/supervisor"
	"github.com/tomtom215/moodreel/internal/supervisor/services"
)

// memorySweepInterval is how often the in-memory cache drops expired entries.
const memorySweepInterval = time.Minute

// initCache opens the configured cache backend. The returned store is nil
// when caching is disabled; the closer is always safe to call.
func initCache(cfg *config.CacheConfig, tree *supervisor.SupervisorTree) (cache.Store, io.Closer, error) {
	switch cfg.Backend {
	case "none":
		logging.Info().Msg("Catalog cache disabled")
		return nil, nopCloser{}, nil

	case "badger":
		store, err := cache.OpenBadger(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Path != "" {
			tree.AddDataService(services.NewCacheGCService(store, services.DefaultGCInterval, logging.WithComponent("cache")))
		}
		logging.Info().Str("path", cfg.Path).Dur("ttl", cfg.TTL).Msg("Catalog cache on badger")
		return store, store, nil

	default:
		store := cache.New(memorySweepInterval)
		logging.Info().Dur("ttl", cfg.TTL).Msg("Catalog cache in memory")
		return store, store, nil
	}
}

// initCatalog builds the TMDB client chain: cache, then breaker, then HTTP.
func initCatalog(cfg *config.CatalogConfig, store cache.Store, ttl time.Duration) catalog.Catalog {
	client := catalog.NewClient(catalog.Options{
		BaseURL:           cfg.BaseURL,
		APIKey:            cfg.APIKey,
		ReadToken:         cfg.ReadToken,
		ImageBaseURL:      cfg.ImageBaseURL,
		PosterSize:        cfg.PosterSize,
		BackdropSize:      cfg.BackdropSize,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})

	var cat catalog.Catalog = catalog.NewCircuitBreakerClient(client)
	if store != nil {
		cat = catalog.NewCachedClient(cat, store, ttl)
	}
	return cat
}

// initInference builds the Gemini client. A missing key is not fatal:
// every mood then falls back to drama.
func initInference(cfg *config.InferenceConfig) *inference.Client {
	if cfg.APIKey == "" {
		logging.Warn().Msg("GEMINI_API_KEY not set; genre inference will fall back to drama")
	}
	return inference.NewClient(inference.Options{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
