// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package models

import "time"

// HistoryEntry records one recommendation request made by a user.
type HistoryEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Mood       string    `json:"mood"`
	Genres     []string  `json:"genres"`
	MovieCount int       `json:"movieCount"`
	SearchedAt time.Time `json:"searchedAt"`
}
