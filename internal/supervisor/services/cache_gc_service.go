// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultGCInterval is how often the value log is checked.
	DefaultGCInterval = 10 * time.Minute

	// DefaultGCDiscardRatio rewrites a value log file once half of it is stale.
	DefaultGCDiscardRatio = 0.5
)

// GarbageCollector is satisfied by *cache.BadgerStore.
type GarbageCollector interface {
	CollectGarbage(discardRatio float64) error
}

// CacheGCService reclaims disk space held by expired catalog cache entries.
type CacheGCService struct {
	store        GarbageCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
}

// NewCacheGCService returns a service that collects every interval.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewCacheGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *CacheGCService {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	return &CacheGCService{
		store:        store,
		interval:     interval,
		discardRatio: DefaultGCDiscardRatio,
		logger:       logger.With().Str("service", "cache-gc").Logger(),
	}
}

// Serve implements suture.Service. A failed collection is logged and retried
// on the next tick rather than crashing the service.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("cache gc running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.CollectGarbage(s.discardRatio); err != nil {
				s.logger.Warn().Err(err).Msg("cache value log gc failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("cache value log gc complete")
		}
	}
}

// String implements fmt.Stringer.
func (s *CacheGCService) String() string {
	return "cache-gc"
}
