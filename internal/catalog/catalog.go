// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package catalog is the TMDB movie catalog adapter.

Client talks to the TMDB v3 REST API and normalizes its records into
models.Movie. CircuitBreakerClient and CachedClient decorate any Catalog,
so the production chain is:

	CachedClient -> CircuitBreakerClient -> Client

Errors are never swallowed. Transport failures match ErrUnavailable,
non-2xx responses are *StatusError values matching ErrNotFound (404) or
ErrUpstream, and malformed bodies match ErrDecode.
*/
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/moodreel/internal/models"
)

// Default result sizes.
const (
	DefaultLimit         = 12
	DefaultTrendingLimit = 10
)

// Catalog is the set of movie lookups the API needs.
type Catalog interface {
	// DiscoverByGenres lists popular, well-rated movies in any of ids.
	// An empty ids omits the genre filter.
	DiscoverByGenres(ctx context.Context, ids []int, page, limit int) ([]models.Movie, error)
	Search(ctx context.Context, query string, page int) ([]models.Movie, error)
	Details(ctx context.Context, id int64) (*models.Movie, error)
	Popular(ctx context.Context, page, limit int) ([]models.Movie, error)
	Trending(ctx context.Context, limit int) ([]models.Movie, error)
}

var (
	// ErrUnavailable means TMDB could not be reached.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrUpstream means TMDB answered with a non-success status.
	ErrUpstream = errors.New("catalog upstream error")
	// ErrNotFound means TMDB answered 404.
	ErrNotFound = errors.New("movie not found")
	// ErrDecode means the TMDB body could not be decoded.
	ErrDecode = errors.New("malformed catalog response")
)

// StatusError is a non-2xx TMDB response.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("tmdb %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Is matches ErrNotFound for 404 and ErrUpstream for every other status.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUpstream:
		return e.StatusCode != http.StatusNotFound
	}
	return false
}

func truncate(movies []models.Movie, limit int) []models.Movie {
	if limit > 0 && len(movies) > limit {
		return movies[:limit]
	}
	return movies
}
