// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/moodreel/internal/auth"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
)

// MoodRecommend handles mood-based recommendation requests
//
// @Summary Recommend movies for a mood
// @Description Infers two or three genres from a free-text mood and returns up to 12 well-rated movies in those genres. Identified callers also get a history entry; a history failure never fails the request.
// @Tags Mood
// @Accept json
// @Produce json
// @Param request body models.MoodRequest true "Mood text, 1 to 500 characters"
// @Success 200 {object} models.APIResponse{data=models.RecommendationResult} "Recommendations"
// @Failure 400 {object} models.APIResponse "Validation error"
// @Failure 502 {object} models.APIResponse "Movie catalog failure"
// @Security BearerAuth
// @Router /mood/recommend [post]
func (h *Handler) MoodRecommend(w http.ResponseWriter, r *http.Request) {
	var req models.MoodRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.recommender.Recommend(r.Context(), req.Mood)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	if userID, ok := auth.UserID(r.Context()); ok {
		h.recordHistory(r.Context(), userID, result)
	}

	respondData(w, http.StatusOK, result)
}

// recordHistory appends a history entry. Failures are logged and counted
// but never reach the caller.
func (h *Handler) recordHistory(ctx context.Context, userID string, result *models.RecommendationResult) {
	if h.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()

	if _, err := h.history.Append(ctx, userID, result.Mood, result.Genres, len(result.Movies)); err != nil {
		metrics.HistoryWriteFailures.Inc()
		logging.CtxWarn(ctx).Err(err).Msg("Failed to save search history")
	}
}
