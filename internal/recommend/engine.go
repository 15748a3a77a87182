// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package recommend turns a mood into a list of movies.
//
// The pipeline is: infer genre labels, substitute "drama" for an empty
// answer, map labels to catalog ids, then discover movies. When no label
// maps to a known genre the popular list is used instead of an unfiltered
// discover query.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodreel/internal/catalog"
	"github.com/tomtom215/moodreel/internal/genre"
	"github.com/tomtom215/moodreel/internal/inference"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
)

// Mood length bounds, in characters.
const (
	MinMoodLength = 1
	MaxMoodLength = 500
)

// Catalog paths recorded in metrics.
const (
	PathDiscover = "discover"
	PathPopular  = "popular"
)

var (
	// ErrInvalidMood means the mood is empty or longer than MaxMoodLength.
	ErrInvalidMood = errors.New("mood must be between 1 and 500 characters")
	// ErrRecommendationFailed matches every *Failure.
	ErrRecommendationFailed = errors.New("failed to generate recommendations")
)

// Failure is a recommendation that could not be completed because the
// catalog failed. Unwrap exposes the catalog error.
type Failure struct {
	Message string
	Cause   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Message, f.Cause)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Is matches ErrRecommendationFailed.
func (f *Failure) Is(target error) bool {
	return target == ErrRecommendationFailed
}

// Engine runs the mood pipeline. It holds no per-request state and is safe
// for concurrent use.
type Engine struct {
	inferrer inference.Inferrer
	catalog  catalog.Catalog
	limit    int
}

// NewEngine returns an Engine returning catalog.DefaultLimit movies.
func NewEngine(inferrer inference.Inferrer, cat catalog.Catalog) *Engine {
	return &Engine{
		inferrer: inferrer,
		catalog:  cat,
		limit:    catalog.DefaultLimit,
	}
}

// log returns the request-scoped logger tagged with this component.
func (e *Engine) log(ctx context.Context) *zerolog.Logger {
	l := logging.Ctx(ctx).With().Str("component", "recommend").Logger()
	return &l
}

// ValidateMood checks the mood length without trimming.
func ValidateMood(mood string) error {
	n := utf8.RuneCountInString(mood)
	if n < MinMoodLength || n > MaxMoodLength {
		return ErrInvalidMood
	}
	return nil
}

// Recommend infers genres for mood and returns matching movies. Inference
// problems never fail the call; catalog problems return a *Failure.
func (e *Engine) Recommend(ctx context.Context, mood string) (*models.RecommendationResult, error) {
	if err := ValidateMood(mood); err != nil {
		return nil, err
	}

	res := e.inferrer.Infer(ctx, mood)
	labels := res.Genres
	switch {
	case res.Degraded:
		e.log(ctx).Warn().Err(res.Cause).Strs("genres", labels).Msg("Using fallback genres")
	case len(labels) == 0:
		labels = []string{genre.Fallback}
		e.log(ctx).Debug().Msg("Inference returned no genres; using fallback")
	}

	ids := genre.NamesToIDs(labels)

	var (
		movies []models.Movie
		err    error
		path   = PathDiscover
	)
	if len(ids) > 0 {
		movies, err = e.catalog.DiscoverByGenres(ctx, ids, 1, e.limit)
	} else {
		path = PathPopular
		e.log(ctx).Info().Strs("genres", labels).Msg("No inferred genre is known; recommending popular movies")
		movies, err = e.catalog.Popular(ctx, 1, e.limit)
	}
	metrics.RecordRecommendation(path, err)
	if err != nil {
		e.log(ctx).Error().Err(err).Str("path", path).Msg("Catalog lookup failed")
		return nil, &Failure{Message: "Failed to generate recommendations", Cause: err}
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	return &models.RecommendationResult{
		Mood:   mood,
		Genres: labels,
		Movies: movies,
	}, nil
}
