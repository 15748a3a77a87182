// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package api provides the HTTP REST layer for Moodreel.

Routes live under /api and answer with a common envelope:

	{"success": true, "data": {...}}
	{"success": false, "error": "Movie already in favorites"}
	{"success": false, "error": "Validation error", "details": [{"field": "mood", "message": "..."}]}

Endpoint groups:

  - /api/mood/recommend: mood to movies (identity optional; identified
    callers get a history entry)
  - /api/movies: catalog browsing (search, popular, trending, details)
  - /api/favorites and /api/history: per-user state (identity required)
  - /api/health: liveness, written without the envelope

Outside /api the router serves the API info document at /, Prometheus
metrics at /metrics and Swagger UI at /swagger/.

Error mapping is centralised in respondServiceError: validation failures
are 400, missing identity 401, duplicate favorites 409, catalog failures
502 (404 for unknown movies), an unavailable store 503 and anything else
500. In production the 5xx messages are generic.
*/
package api
