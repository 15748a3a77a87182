// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/validation"
)

// writeJSON encodes body with the given status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData writes a success envelope carrying data.
func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, &models.APIResponse{Success: true, Data: data})
}

// respondMessage writes a success envelope carrying a message and optional data.
func respondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, &models.APIResponse{Success: true, Data: data, Message: message})
}

// respondError writes a failure envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, &models.APIResponse{Success: false, Error: message})
}

// respondValidationError writes a 400 with per-field details.
func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	writeJSON(w, http.StatusBadRequest, &models.APIResponse{
		Success: false,
		Error:   "Validation error",
		Details: verr.FieldErrors(),
	})
}

// sanitizeLogValue strips control characters from caller-supplied values
// before they reach the log.
func sanitizeLogValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return ' '
		}
		return r
	}, s)
}
