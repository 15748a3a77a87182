// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/moodreel/internal/database"
	"github.com/tomtom215/moodreel/internal/models"
)

// ServiceName identifies this service in health responses.
const ServiceName = "movie-recommendation-api"

// APIVersion is reported by the info document.
const APIVersion = "1.0.0"

// Health handles liveness checks
//
// @Summary Liveness check
// @Description Always 200 while the process serves requests. The body is not wrapped in the envelope. database reports whether favorites and history are usable.
// @Tags Core
// @Produce json
// @Success 200 {object} models.HealthStatus "Service is alive"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Service:   ServiceName,
	}

	if h.store != nil {
		switch h.store.Get(r.Context()).(type) {
		case database.Connected:
			status.Database = "connected"
		default:
			status.Database = "unavailable"
		}
	}

	writeJSON(w, http.StatusOK, status)
}

// Info handles GET /
//
// @Summary API information
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIInfo "Name, version and endpoint map"
// @Router / [get]
func (h *Handler) Info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.APIInfo{
		Message: "AI-Powered Movie Recommendation API",
		Version: APIVersion,
		Endpoints: map[string]string{
			"health":    "/api/health",
			"movies":    "/api/movies",
			"mood":      "/api/mood",
			"favorites": "/api/favorites",
			"history":   "/api/history",
			"metrics":   "/metrics",
			"docs":      "/swagger/index.html",
		},
	})
}
