// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package inference turns free-text moods into genre labels using Gemini.
//
// Inference never fails outward. Every failure becomes a Degraded result
// carrying the fallback genre list and its cause, so callers always have
// something to search for.
package inference

import (
	"context"
	"errors"

	"github.com/tomtom215/moodreel/internal/breaker"
	"github.com/tomtom215/moodreel/internal/genre"
)

// Inferrer maps a mood to genre labels.
type Inferrer interface {
	Infer(ctx context.Context, mood string) Result
}

// Result is the outcome of one inference. Genres is never nil.
type Result struct {
	Genres   []string
	Degraded bool
	Cause    error
}

// Ok wraps genres the model actually produced. The list may be empty.
func Ok(genres []string) Result {
	if genres == nil {
		genres = []string{}
	}
	return Result{Genres: genres}
}

// Degraded wraps a fallback list substituted because of cause.
func Degraded(fallback []string, cause error) Result {
	return Result{Genres: fallback, Degraded: true, Cause: cause}
}

// FallbackGenres is substituted whenever inference fails.
func FallbackGenres() []string {
	return []string{genre.Fallback}
}

var (
	ErrNotConfigured = errors.New("gemini api key not configured")
	ErrTransport     = errors.New("gemini request failed")
	ErrStatus        = errors.New("gemini returned non-success status")
	ErrNoArray       = errors.New("no genre array in model output")
	ErrParse         = errors.New("genre array could not be parsed")
)

// reason maps a cause to the fallback metric label.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case breaker.IsRejected(err):
		return "circuit_open"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrNoArray):
		return "no_array"
	case errors.Is(err, ErrParse):
		return "parse"
	default:
		return "transport"
	}
}
