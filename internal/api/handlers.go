// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"context"
	"time"

	"github.com/tomtom215/moodreel/internal/catalog"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/database"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/recommend"
)

// Recommender produces recommendations for a mood.
type Recommender interface {
	Recommend(ctx context.Context, mood string) (*models.RecommendationResult, error)
}

var _ Recommender = (*recommend.Engine)(nil)

// StoreState reports the resolved database state.
type StoreState interface {
	Get(ctx context.Context) database.State
}

var _ StoreState = (*database.Handle)(nil)

// historyWriteTimeout bounds the history side effect of a recommendation.
const historyWriteTimeout = 5 * time.Second

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_mood.go: mood recommendations
//   - handlers_movies.go: catalog browsing
//   - handlers_favorites.go: favorites
//   - handlers_history.go: search history
//   - handlers_health.go: health and API info
type Handler struct {
	recommender Recommender
	catalog     catalog.Catalog
	favorites   database.FavoriteStore
	history     database.HistoryStore
	store       StoreState
	production  bool
}

// NewHandler creates the API handler. store may be nil, in which case the
// health document omits the database state.
func NewHandler(cfg *config.Config, rec Recommender, cat catalog.Catalog, favorites database.FavoriteStore, history database.HistoryStore, store StoreState) *Handler {
	return &Handler{
		recommender: rec,
		catalog:     cat,
		favorites:   favorites,
		history:     history,
		store:       store,
		production:  cfg != nil && cfg.IsProduction(),
	}
}
