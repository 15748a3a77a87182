// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package middleware provides the infrastructure middleware mounted on the
chi router: request IDs, access logging, Prometheus instrumentation,
security headers and gzip compression.

Every constructor has the chi shape func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Route("/api", func(r chi.Router) {
	    r.Use(middleware.SecurityHeaders)
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(middleware.Compression)
	})

PrometheusMetrics labels requests with the matched chi route pattern
("/api/movies/{id}") rather than the raw path so that movie ids do not
explode label cardinality.
*/
package middleware
