// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/moodreel/internal/breaker"
	"github.com/tomtom215/moodreel/internal/models"
)

var _ Catalog = (*CircuitBreakerClient)(nil)

// BreakerName labels the TMDB breaker in metrics.
const BreakerName = "tmdb-api"

// CircuitBreakerClient guards a Catalog with a circuit breaker. A 404 is a
// valid answer and does not count toward tripping. Rejections while open
// are reported as ErrUnavailable.
type CircuitBreakerClient struct {
	next Catalog
	cb   *breaker.Breaker
}

// NewCircuitBreakerClient wraps next with the default breaker settings.
func NewCircuitBreakerClient(next Catalog) *CircuitBreakerClient {
	return NewCircuitBreakerClientWithConfig(next, breaker.DefaultConfig(BreakerName))
}

// NewCircuitBreakerClientWithConfig wraps next with explicit settings.
func NewCircuitBreakerClientWithConfig(next Catalog, cfg breaker.Config) *CircuitBreakerClient {
	if cfg.IsSuccessful == nil {
		cfg.IsSuccessful = func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		}
	}
	return &CircuitBreakerClient{next: next, cb: breaker.New(cfg)}
}

// Breaker exposes the underlying breaker for health reporting.
func (c *CircuitBreakerClient) Breaker() *breaker.Breaker {
	return c.cb
}

func (c *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := c.cb.Execute(fn)
	if err != nil && breaker.IsRejected(err) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return result, err
}

func (c *CircuitBreakerClient) movies(fn func() ([]models.Movie, error)) ([]models.Movie, error) {
	result, err := c.execute(func() (interface{}, error) { return fn() })
	if err != nil {
		return nil, err
	}
	movies, ok := result.([]models.Movie)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for movie list")
	}
	return movies, nil
}

// DiscoverByGenres delegates under the breaker.
func (c *CircuitBreakerClient) DiscoverByGenres(ctx context.Context, ids []int, page, limit int) ([]models.Movie, error) {
	return c.movies(func() ([]models.Movie, error) {
		return c.next.DiscoverByGenres(ctx, ids, page, limit)
	})
}

// Search delegates under the breaker.
func (c *CircuitBreakerClient) Search(ctx context.Context, query string, page int) ([]models.Movie, error) {
	return c.movies(func() ([]models.Movie, error) {
		return c.next.Search(ctx, query, page)
	})
}

// Details delegates under the breaker.
func (c *CircuitBreakerClient) Details(ctx context.Context, id int64) (*models.Movie, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.next.Details(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	movie, ok := result.(*models.Movie)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for Details")
	}
	return movie, nil
}

// Popular delegates under the breaker.
func (c *CircuitBreakerClient) Popular(ctx context.Context, page, limit int) ([]models.Movie, error) {
	return c.movies(func() ([]models.Movie, error) {
		return c.next.Popular(ctx, page, limit)
	})
}

// Trending delegates under the breaker.
func (c *CircuitBreakerClient) Trending(ctx context.Context, limit int) ([]models.Movie, error) {
	return c.movies(func() ([]models.Movie, error) {
		return c.next.Trending(ctx, limit)
	})
}
