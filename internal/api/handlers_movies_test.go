// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/moodreel/internal/catalog"
	"github.com/tomtom215/moodreel/internal/models"
)

func TestMovieDetails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/movies/550", "", nil)
	expectStatus(t, rec, http.StatusOK)

	var movie models.Movie
	decodeData(t, decodeEnvelope(t, rec), &movie)
	if movie.ID != 550 || movie.Title != "Fight Club" {
		t.Errorf("movie = %+v", movie)
	}
}

func TestMovieDetails_InvalidIDMakesNoCall(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"abc", "12abc", "1.5", "-3", "0"} {
		t.Run(id, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			rec := env.do(t, http.MethodGet, "/api/movies/"+id, "", nil)
			expectStatus(t, rec, http.StatusBadRequest)

			if body := decodeEnvelope(t, rec); body.Error != "Invalid movie ID" {
				t.Errorf("error = %q", body.Error)
			}
			if env.catalog.total() != 0 {
				t.Errorf("catalog called %d times", env.catalog.total())
			}
		})
	}
}

func TestMovieDetails_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/movies/999999", "", nil)
	expectStatus(t, rec, http.StatusNotFound)
	if body := decodeEnvelope(t, rec); body.Error != "Movie not found" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestSearchMovies(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/movies/search?query=before", "", nil)
	expectStatus(t, rec, http.StatusOK)
	var movies []models.Movie
	decodeData(t, decodeEnvelope(t, rec), &movies)
	if len(movies) != 2 {
		t.Errorf("got %d movies", len(movies))
	}

	for _, target := range []string{"/api/movies/search", "/api/movies/search?query=", "/api/movies/search?query=%20%20"} {
		rec := env.do(t, http.MethodGet, target, "", nil)
		expectStatus(t, rec, http.StatusBadRequest)
		if body := decodeEnvelope(t, rec); body.Error != "Search query is required" {
			t.Errorf("%s: error = %q", target, body.Error)
		}
	}
	if got := env.catalog.calls["search"]; got != 1 {
		t.Errorf("search calls = %d, want 1", got)
	}
}

func TestPopularAndTrending(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for _, target := range []string{"/api/movies/popular", "/api/movies/popular?page=2", "/api/movies/popular?page=bogus", "/api/movies/trending"} {
		rec := env.do(t, http.MethodGet, target, "", nil)
		expectStatus(t, rec, http.StatusOK)
		body := decodeEnvelope(t, rec)
		var movies []models.Movie
		decodeData(t, body, &movies)
		if !body.Success || len(movies) == 0 {
			t.Errorf("%s: body = %+v", target, body)
		}
	}
	if env.catalog.calls["popular"] != 3 || env.catalog.calls["trending"] != 1 {
		t.Errorf("calls = %v", env.catalog.calls)
	}
}

func TestMovies_CatalogFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  string
		err  error
		want string
	}{
		{"production upstream", "production", &catalog.StatusError{StatusCode: 500, Endpoint: "/movie/popular"}, "Failed to fetch movies from catalog"},
		{"production unreachable", "production", fmt.Errorf("tmdb: %w: dial tcp", catalog.ErrUnavailable), "Failed to fetch movies from catalog"},
		{"development decode", "development", fmt.Errorf("tmdb: %w: eof", catalog.ErrDecode), "tmdb: malformed catalog response: eof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, withEnvironment(tt.env))
			env.catalog.err = tt.err

			rec := env.do(t, http.MethodGet, "/api/movies/popular", "", nil)
			expectStatus(t, rec, http.StatusBadGateway)
			if body := decodeEnvelope(t, rec); body.Error != tt.want {
				t.Errorf("error = %q, want %q", body.Error, tt.want)
			}
		})
	}
}
