// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/moodreel/internal/catalog"
	"github.com/tomtom215/moodreel/internal/database"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/recommend"
	"github.com/tomtom215/moodreel/internal/validation"
)

// Client-facing error messages.
const (
	msgInvalidMovieID   = "Invalid movie ID"
	msgSearchQuery      = "Search query is required"
	msgMovieNotFound    = "Movie not found"
	msgFavoriteExists   = "Movie already in favorites"
	msgStoreUnavailable = "Database not available - favorites and history are disabled"
	msgCatalogFailed    = "Failed to fetch movies from catalog"
	msgInternal         = "Internal server error"
	msgRateLimited      = "Too many requests, please try again later."
	msgMethodNotAllowed = "Method not allowed"
)

// respondServiceError maps an error from the domain packages to a status
// and envelope. 5xx details are hidden in production.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr    *validation.RequestValidationError
		failure *recommend.Failure
	)

	switch {
	case errors.As(err, &verr):
		respondValidationError(w, verr)
		return

	case errors.Is(err, recommend.ErrInvalidMood):
		respondValidationError(w, validation.NewFieldError("mood", "mood must be between 1 and 500 characters"))
		return

	case errors.Is(err, database.ErrFavoriteExists):
		respondError(w, http.StatusConflict, msgFavoriteExists)
		return

	case errors.Is(err, database.ErrStoreUnavailable):
		logging.CtxWarn(r.Context()).Err(err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Store unavailable")
		respondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)
		return

	case errors.As(err, &failure):
		logging.CtxErr(r.Context(), err).Msg("Recommendation failed")
		respondError(w, http.StatusBadGateway, h.detail(failure.Message, err))
		return

	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, msgMovieNotFound)
		return

	case isCatalogError(err):
		logging.CtxErr(r.Context(), err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Catalog request failed")
		respondError(w, http.StatusBadGateway, h.detail(msgCatalogFailed, err))
		return
	}

	logging.CtxErr(r.Context(), err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Unhandled error")
	respondError(w, http.StatusInternalServerError, h.detail(msgInternal, err))
}

// detail returns generic in production and the error text otherwise.
func (h *Handler) detail(generic string, err error) string {
	if h.production {
		return generic
	}
	return err.Error()
}

func isCatalogError(err error) bool {
	return errors.Is(err, catalog.ErrUpstream) ||
		errors.Is(err, catalog.ErrUnavailable) ||
		errors.Is(err, catalog.ErrDecode)
}
