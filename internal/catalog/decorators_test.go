// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moodreel/internal/breaker"
	"github.com/tomtom215/moodreel/internal/cache"
	"github.com/tomtom215/moodreel/internal/models"
)

// stubCatalog returns canned results and counts calls.
type stubCatalog struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func newStub(err error) *stubCatalog {
	return &stubCatalog{calls: map[string]int{}, err: err}
}

func (s *stubCatalog) hit(op string) {
	s.mu.Lock()
	s.calls[op]++
	s.mu.Unlock()
}

func (s *stubCatalog) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubCatalog) list(op string) ([]models.Movie, error) {
	s.hit(op)
	if s.err != nil {
		return nil, s.err
	}
	return []models.Movie{{ID: 7, Title: op, Genres: []string{"drama"}}}, nil
}

func (s *stubCatalog) DiscoverByGenres(context.Context, []int, int, int) ([]models.Movie, error) {
	return s.list("discover")
}

func (s *stubCatalog) Search(context.Context, string, int) ([]models.Movie, error) {
	return s.list("search")
}

func (s *stubCatalog) Details(_ context.Context, id int64) (*models.Movie, error) {
	s.hit("details")
	if s.err != nil {
		return nil, s.err
	}
	return &models.Movie{ID: id, Title: "details", Genres: []string{}}, nil
}

func (s *stubCatalog) Popular(context.Context, int, int) ([]models.Movie, error) {
	return s.list("popular")
}

func (s *stubCatalog) Trending(context.Context, int) ([]models.Movie, error) {
	return s.list("trending")
}

func TestCachedClientServesRepeatsFromCache(t *testing.T) {
	t.Parallel()

	stub := newStub(nil)
	store := cache.New(0)
	defer store.Close()
	c := NewCachedClient(stub, store, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		movies, err := c.DiscoverByGenres(ctx, []int{18}, 1, 12)
		if err != nil || len(movies) != 1 || movies[0].Title != "discover" {
			t.Fatalf("DiscoverByGenres() = %v, %v", movies, err)
		}
	}
	if stub.count("discover") != 1 {
		t.Errorf("inner discover calls = %d, want 1", stub.count("discover"))
	}

	if _, err := c.DiscoverByGenres(ctx, []int{35}, 1, 12); err != nil {
		t.Fatal(err)
	}
	if stub.count("discover") != 2 {
		t.Errorf("different arguments must miss the cache, calls = %d", stub.count("discover"))
	}

	movie, err := c.Details(ctx, 42)
	if err != nil || movie.ID != 42 {
		t.Fatalf("Details() = %v, %v", movie, err)
	}
	if _, err := c.Details(ctx, 42); err != nil {
		t.Fatal(err)
	}
	if stub.count("details") != 1 {
		t.Errorf("inner details calls = %d, want 1", stub.count("details"))
	}
}

// setCounter counts writes reaching the wrapped store.
type setCounter struct {
	cache.Store
	sets atomic.Int64
}

func (s *setCounter) Set(key string, value []byte, ttl time.Duration) {
	s.sets.Add(1)
	s.Store.Set(key, value, ttl)
}

func TestCachedClientDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	stub := newStub(ErrUnavailable)
	inner := cache.New(0)
	defer inner.Close()
	store := &setCounter{Store: inner}
	c := NewCachedClient(stub, store, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := c.Trending(context.Background(), 10); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("err = %v, want ErrUnavailable", err)
		}
	}
	if stub.count("trending") != 2 {
		t.Errorf("errors must not be cached, inner calls = %d", stub.count("trending"))
	}
	if n := store.sets.Load(); n != 0 {
		t.Errorf("store received %d writes after failures", n)
	}
}

func TestCachedClientWithBadger(t *testing.T) {
	t.Parallel()

	store, err := cache.OpenBadger("")
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	defer store.Close()

	stub := newStub(nil)
	c := NewCachedClient(stub, store, time.Minute)
	for i := 0; i < 2; i++ {
		if _, err := c.Search(context.Background(), "heat", 1); err != nil {
			t.Fatal(err)
		}
	}
	if stub.count("search") != 1 {
		t.Errorf("inner search calls = %d, want 1", stub.count("search"))
	}
}

func TestCircuitBreakerClientOpens(t *testing.T) {
	t.Parallel()

	stub := newStub(&StatusError{StatusCode: 500, Endpoint: "/movie/popular"})
	cfg := breaker.DefaultConfig("tmdb-test-open")
	cfg.MinRequests = 3
	c := NewCircuitBreakerClientWithConfig(stub, cfg)

	for i := 0; i < 3; i++ {
		if _, err := c.Popular(context.Background(), 1, 12); !errors.Is(err, ErrUpstream) {
			t.Fatalf("err = %v, want ErrUpstream", err)
		}
	}
	if c.Breaker().State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", c.Breaker().State())
	}

	_, err := c.Popular(context.Background(), 1, 12)
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrUnavailable wrapping ErrOpenState", err)
	}
	if stub.count("popular") != 3 {
		t.Errorf("open breaker must not call through, calls = %d", stub.count("popular"))
	}
}

func TestCircuitBreakerClientIgnoresNotFound(t *testing.T) {
	t.Parallel()

	stub := newStub(&StatusError{StatusCode: 404, Endpoint: "/movie/1"})
	cfg := breaker.DefaultConfig("tmdb-test-404")
	cfg.MinRequests = 2
	c := NewCircuitBreakerClientWithConfig(stub, cfg)

	for i := 0; i < 5; i++ {
		if _, err := c.Details(context.Background(), 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	}
	if c.Breaker().State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed for 404s", c.Breaker().State())
	}
}

func TestCircuitBreakerClientPassesResults(t *testing.T) {
	t.Parallel()

	c := NewCircuitBreakerClient(newStub(nil))
	ctx := context.Background()

	if m, err := c.Details(ctx, 9); err != nil || m.ID != 9 {
		t.Errorf("Details() = %v, %v", m, err)
	}
	for name, fn := range map[string]func() ([]models.Movie, error){
		"discover": func() ([]models.Movie, error) { return c.DiscoverByGenres(ctx, []int{18}, 1, 12) },
		"search":   func() ([]models.Movie, error) { return c.Search(ctx, "q", 1) },
		"popular":  func() ([]models.Movie, error) { return c.Popular(ctx, 1, 12) },
		"trending": func() ([]models.Movie, error) { return c.Trending(ctx, 10) },
	} {
		movies, err := fn()
		if err != nil || len(movies) != 1 || movies[0].Title != name {
			t.Errorf("%s = %v, %v", name, movies, err)
		}
	}
}
