// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package models

import "time"

// APIResponse is the envelope returned by every /api endpoint.
//
// Success:
//
//	{"success": true, "data": {...}, "message": "Movie added to favorites"}
//
// Failure:
//
//	{"success": false, "error": "Movie already in favorites"}
type APIResponse struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Details []FieldError `json:"details,omitempty"` // validation failures only
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HealthStatus is the body of GET /api/health.
// It is written without the envelope, matching what existing clients poll.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Database  string    `json:"database,omitempty"` // connected, unavailable or pending
}

// APIInfo is the body of GET /.
type APIInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
