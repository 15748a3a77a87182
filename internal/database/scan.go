// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"database/sql"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodreel/internal/logging"
)

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// decodeGenres reads a JSON genre column. A corrupt value yields an empty
// list rather than failing the whole read.
func decodeGenres(raw string) []string {
	genres := []string{}
	if raw == "" {
		return genres
	}
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		logging.Warn().Err(err).Msg("Ignoring undecodable genres column")
		return []string{}
	}
	if genres == nil {
		genres = []string{}
	}
	return genres
}
