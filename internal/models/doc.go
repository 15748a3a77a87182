// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package models defines the wire and storage types of the recommendation API.

Key Components:

  - Movie: catalog movie normalized from TMDB, genre names instead of ids
  - RecommendationResult: mood, inferred genres and the movies found for them
  - Favorite, FavoriteRequest, FavoriteStatus: per-user saved movies
  - HistoryEntry: one recorded mood recommendation
  - APIResponse: the {success, data, error, message, details} envelope
  - HealthStatus, APIInfo: the two bare (unenveloped) documents

JSON field names are camelCase. Optional catalog fields are pointers and
encode as null rather than being omitted, so clients can rely on every key
being present. UserID never leaves the server.

Request types carry go-playground/validator tags; internal/validation turns
their failures into FieldError values for the envelope's details list.
*/
package models
