// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package models

import "time"

// Favorite is a movie saved by one user. (UserID, MovieID) is unique.
type Favorite struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	MovieID     int64     `json:"movieId"`
	Title       string    `json:"title"`
	PosterURL   *string   `json:"posterUrl"`
	Overview    *string   `json:"overview"`
	Rating      *float64  `json:"rating"`
	ReleaseDate *string   `json:"releaseDate"`
	Genres      []string  `json:"genres"`
	AddedAt     time.Time `json:"addedAt"`
}

// FavoriteRequest is the body of POST /api/favorites.
// PosterPath carries whatever poster reference the client holds, usually
// the full URL it received from the movie endpoints.
type FavoriteRequest struct {
	MovieID     int64    `json:"movieId" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"required,max=500"`
	PosterPath  *string  `json:"posterPath" validate:"omitempty,max=1000"`
	Overview    *string  `json:"overview" validate:"omitempty,max=10000"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	ReleaseDate *string  `json:"releaseDate" validate:"omitempty,max=32"`
	Genres      []string `json:"genres" validate:"max=20,dive,max=64"`
}

// FavoriteStatus is the body of GET /api/favorites/check/{id}.
type FavoriteStatus struct {
	IsFavorite bool `json:"isFavorite"`
}
