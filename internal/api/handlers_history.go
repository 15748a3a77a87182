// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moodreel/internal/database"
)

// ListHistory handles listing the caller's recent moods
//
// @Summary List search history
// @Description Most recent first. limit defaults to 20 and is clamped to 1..100.
// @Tags History
// @Produce json
// @Param limit query int false "Maximum entries" default(20)
// @Success 200 {object} models.APIResponse{data=[]models.HistoryEntry} "History"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 503 {object} models.APIResponse "Database not available"
// @Security BearerAuth
// @Router /history [get]
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit := database.ClampHistoryLimit(getIntParam(r, "limit", database.DefaultHistoryLimit))
	entries, err := h.history.List(r.Context(), userID, limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, entries)
}

// ClearHistory handles deleting all of the caller's history
//
// @Summary Clear search history
// @Tags History
// @Produce json
// @Success 200 {object} models.APIResponse "History cleared"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 503 {object} models.APIResponse "Database not available"
// @Security BearerAuth
// @Router /history [delete]
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if _, err := h.history.Clear(r.Context(), userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "History cleared", nil)
}

// DeleteHistoryEntry handles deleting one history entry
//
// @Summary Delete a history entry
// @Description Entries belonging to other users are left alone and the call still succeeds.
// @Tags History
// @Produce json
// @Param id path string true "History entry id"
// @Success 200 {object} models.APIResponse "History entry deleted"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 503 {object} models.APIResponse "Database not available"
// @Security BearerAuth
// @Router /history/{id} [delete]
func (h *Handler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.history.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "History entry deleted", nil)
}
