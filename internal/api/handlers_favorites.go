// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"net/http"

	"github.com/tomtom215/moodreel/internal/models"
)

// AddFavorite handles saving a movie to the caller's favorites
//
// @Summary Add a favorite
// @Tags Favorites
// @Accept json
// @Produce json
// @Param request body models.FavoriteRequest true "Movie to save"
// @Success 201 {object} models.APIResponse{data=models.Favorite} "Movie added to favorites"
// @Failure 400 {object} models.APIResponse "Validation error"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 409 {object} models.APIResponse "Movie already in favorites"
// @Failure 503 {object} models.APIResponse "Database not available"
// @Security BearerAuth
// @Router /favorites [post]
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req models.FavoriteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fav, err := h.favorites.Add(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Movie added to favorites", fav)
}

// ListFavorites handles listing the caller's favorites
//
// @Summary List favorites
// @Description Newest first.
// @Tags Favorites
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Favorite} "Favorites"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 503 {object} models.APIResponse "Database not available"
// @Security BearerAuth
// @Router /favorites [get]
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	favs, err := h.favorites.List(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, favs)
}

// RemoveFavorite handles removing a movie from the caller's favorites
//
// @Summary Remove a favorite
// @Description Removing a movie that is not a favorite succeeds.
// @Tags Favorites
// @Produce json
// @Param id path int true "Catalog movie id"
// @Success 200 {object} models.APIResponse "Movie removed from favorites"
// @Failure 400 {object} models.APIResponse "Invalid movie ID"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 503 {object} models.APIResponse "Database not available"
// @Security BearerAuth
// @Router /favorites/{id} [delete]
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	movieID, ok := movieIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, msgInvalidMovieID)
		return
	}

	if err := h.favorites.Remove(r.Context(), userID, movieID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Movie removed from favorites", nil)
}

// CheckFavorite handles favorite membership checks
//
// @Summary Check whether a movie is a favorite
// @Tags Favorites
// @Produce json
// @Param id path int true "Catalog movie id"
// @Success 200 {object} models.APIResponse{data=models.FavoriteStatus} "Membership"
// @Failure 400 {object} models.APIResponse "Invalid movie ID"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 503 {object} models.APIResponse "Database not available"
// @Security BearerAuth
// @Router /favorites/check/{id} [get]
func (h *Handler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	movieID, ok := movieIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, msgInvalidMovieID)
		return
	}

	exists, err := h.favorites.Exists(r.Context(), userID, movieID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, models.FavoriteStatus{IsFavorite: exists})
}
