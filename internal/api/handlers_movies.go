// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/moodreel/internal/catalog"
)

// SearchMovies handles movie title search
//
// @Summary Search movies by title
// @Tags Movies
// @Produce json
// @Param query query string true "Search text"
// @Param page query int false "Result page" default(1)
// @Success 200 {object} models.APIResponse{data=[]models.Movie} "Matching movies"
// @Failure 400 {object} models.APIResponse "Missing query"
// @Failure 502 {object} models.APIResponse "Movie catalog failure"
// @Router /movies/search [get]
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		respondError(w, http.StatusBadRequest, msgSearchQuery)
		return
	}

	movies, err := h.catalog.Search(r.Context(), query, getIntParam(r, "page", 1))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, movies)
}

// PopularMovies handles the popular movie list
//
// @Summary List popular movies
// @Tags Movies
// @Produce json
// @Param page query int false "Result page" default(1)
// @Success 200 {object} models.APIResponse{data=[]models.Movie} "Popular movies"
// @Failure 502 {object} models.APIResponse "Movie catalog failure"
// @Router /movies/popular [get]
func (h *Handler) PopularMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.Popular(r.Context(), getIntParam(r, "page", 1), catalog.DefaultLimit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, movies)
}

// TrendingMovies handles the weekly trending list
//
// @Summary List this week's trending movies
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Movie} "Trending movies"
// @Failure 502 {object} models.APIResponse "Movie catalog failure"
// @Router /movies/trending [get]
func (h *Handler) TrendingMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.Trending(r.Context(), catalog.DefaultTrendingLimit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, movies)
}

// MovieDetails handles single movie lookups
//
// @Summary Get movie details
// @Description A non-numeric id is rejected before any catalog call is made.
// @Tags Movies
// @Produce json
// @Param id path int true "Catalog movie id"
// @Success 200 {object} models.APIResponse{data=models.Movie} "Movie"
// @Failure 400 {object} models.APIResponse "Invalid movie ID"
// @Failure 404 {object} models.APIResponse "Movie not found"
// @Failure 502 {object} models.APIResponse "Movie catalog failure"
// @Router /movies/{id} [get]
func (h *Handler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := movieIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, msgInvalidMovieID)
		return
	}

	movie, err := h.catalog.Details(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, movie)
}
