// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
)

// History list bounds.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// HistoryStore records the moods each user searched for.
type HistoryStore interface {
	Append(ctx context.Context, userID, mood string, genres []string, movieCount int) (*models.HistoryEntry, error)
	List(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error)
	Clear(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

var _ HistoryStore = (*History)(nil)

// History is the SQL HistoryStore.
type History struct {
	handle *Handle
	now    func() time.Time
}

// NewHistory returns a HistoryStore backed by h.
func NewHistory(h *Handle) *History {
	return &History{handle: h, now: time.Now}
}

// ClampHistoryLimit maps a non-positive limit to DefaultHistoryLimit and caps
// the rest at MaxHistoryLimit.
func ClampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}

// Append records one search.
func (s *History) Append(ctx context.Context, userID, mood string, genres []string, movieCount int) (entry *models.HistoryEntry, err error) {
	db, err := connect(ctx, s.handle)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "search_history", time.Since(start), err) }()

	if genres == nil {
		genres = []string{}
	}
	genresJSON, err := json.Marshal(genres)
	if err != nil {
		return nil, fmt.Errorf("encode genres: %w", err)
	}

	entry = &models.HistoryEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Mood:       mood,
		Genres:     genres,
		MovieCount: movieCount,
		SearchedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO search_history (id, user_id, mood, genres, movie_count, searched_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Mood, string(genresJSON), entry.MovieCount, entry.SearchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}
	return entry, nil
}

// List returns up to limit entries, newest first. The limit is clamped with
// ClampHistoryLimit.
func (s *History) List(ctx context.Context, userID string, limit int) (entries []models.HistoryEntry, err error) {
	db, err := connect(ctx, s.handle)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "search_history", time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, user_id, mood, genres, movie_count, searched_at
		FROM search_history
		WHERE user_id = ?
		ORDER BY searched_at DESC, id
		LIMIT ?`, userID, ClampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries = make([]models.HistoryEntry, 0)
	for rows.Next() {
		var (
			e          models.HistoryEntry
			genresJSON string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &genresJSON, &e.MovieCount, &e.SearchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		e.Genres = decodeGenres(genresJSON)
		e.SearchedAt = e.SearchedAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return entries, nil
}

// Clear deletes every entry for the user and returns how many were removed.
func (s *History) Clear(ctx context.Context, userID string) (n int64, err error) {
	db, err := connect(ctx, s.handle)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "search_history", time.Since(start), err) }()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM search_history WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return n, nil
}

// Delete removes one entry owned by userID. An id that is missing or owned
// by someone else is silently ignored so existence is never revealed.
func (s *History) Delete(ctx context.Context, userID, id string) (err error) {
	db, err := connect(ctx, s.handle)
	if err != nil {
		return err
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "search_history", time.Since(start), err) }()

	if _, err = db.conn.ExecContext(ctx, `DELETE FROM search_history WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}
