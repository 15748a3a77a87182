// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package models holds the records shared between the catalog, the
// recommendation engine, the stores and the HTTP layer.
package models

// Movie is a catalog record normalized for clients.
// Genres are canonical lowercase labels from the genre table.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterURL   *string  `json:"posterUrl"`   // nil when the catalog has no poster
	BackdropURL *string  `json:"backdropUrl"` // nil when the catalog has no backdrop
	Rating      float64  `json:"rating"`
	ReleaseDate string   `json:"releaseDate"`
	Genres      []string `json:"genres"`
}

// RecommendationResult is the outcome of one mood recommendation.
// Genres are the labels actually searched for, after the empty-result fallback.
type RecommendationResult struct {
	Mood   string   `json:"mood"`
	Genres []string `json:"genres"`
	Movies []Movie  `json:"movies"`
}

// MoodRequest is the body of POST /api/mood/recommend.
type MoodRequest struct {
	Mood string `json:"mood" validate:"required,min=1,max=500"`
}
