// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
)

// FavoriteStore manages the movies each user has saved.
type FavoriteStore interface {
	Add(ctx context.Context, userID string, req *models.FavoriteRequest) (*models.Favorite, error)
	List(ctx context.Context, userID string) ([]models.Favorite, error)
	Remove(ctx context.Context, userID string, movieID int64) error
	Exists(ctx context.Context, userID string, movieID int64) (bool, error)
	Count(ctx context.Context, userID string) (int, error)
}

var _ FavoriteStore = (*Favorites)(nil)

// Favorites is the SQL FavoriteStore.
type Favorites struct {
	handle *Handle
	now    func() time.Time
}

// NewFavorites returns a FavoriteStore backed by h.
func NewFavorites(h *Handle) *Favorites {
	return &Favorites{handle: h, now: time.Now}
}

// Add saves a movie for userID. The (user_id, movie_id) unique key is the
// only duplicate check, so concurrent adds cannot both succeed.
func (s *Favorites) Add(ctx context.Context, userID string, req *models.FavoriteRequest) (fav *models.Favorite, err error) {
	db, err := connect(ctx, s.handle)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "favorites", time.Since(start), err) }()

	genres := req.Genres
	if genres == nil {
		genres = []string{}
	}
	genresJSON, err := json.Marshal(genres)
	if err != nil {
		return nil, fmt.Errorf("encode genres: %w", err)
	}

	fav = &models.Favorite{
		ID:          uuid.New().String(),
		UserID:      userID,
		MovieID:     req.MovieID,
		Title:       req.Title,
		PosterURL:   req.PosterPath,
		Overview:    req.Overview,
		Rating:      req.Rating,
		ReleaseDate: req.ReleaseDate,
		Genres:      genres,
		AddedAt:     s.now().UTC().Truncate(time.Microsecond),
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, movie_id, title, poster_path, overview, rating, release_date, genres, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fav.ID, fav.UserID, fav.MovieID, fav.Title,
		nullString(fav.PosterURL), nullString(fav.Overview), nullFloat(fav.Rating), nullString(fav.ReleaseDate),
		string(genresJSON), fav.AddedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrFavoriteExists
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return fav, nil
}

// List returns the user's favorites, most recently added first.
func (s *Favorites) List(ctx context.Context, userID string) (favs []models.Favorite, err error) {
	db, err := connect(ctx, s.handle)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "favorites", time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, user_id, movie_id, title, poster_path, overview, rating, release_date, genres, added_at
		FROM favorites
		WHERE user_id = ?
		ORDER BY added_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	favs = make([]models.Favorite, 0)
	for rows.Next() {
		var (
			f           models.Favorite
			poster      sql.NullString
			overview    sql.NullString
			rating      sql.NullFloat64
			releaseDate sql.NullString
			genresJSON  string
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.MovieID, &f.Title, &poster, &overview, &rating, &releaseDate, &genresJSON, &f.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.PosterURL = stringPtr(poster)
		f.Overview = stringPtr(overview)
		f.ReleaseDate = stringPtr(releaseDate)
		if rating.Valid {
			r := rating.Float64
			f.Rating = &r
		}
		f.Genres = decodeGenres(genresJSON)
		f.AddedAt = f.AddedAt.UTC()
		favs = append(favs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return favs, nil
}

// Remove deletes a favorite. Removing a movie that is not saved is a no-op.
func (s *Favorites) Remove(ctx context.Context, userID string, movieID int64) (err error) {
	db, err := connect(ctx, s.handle)
	if err != nil {
		return err
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "favorites", time.Since(start), err) }()

	if _, err = db.conn.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND movie_id = ?`, userID, movieID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// Exists reports whether the user saved movieID.
func (s *Favorites) Exists(ctx context.Context, userID string, movieID int64) (exists bool, err error) {
	db, err := connect(ctx, s.handle)
	if err != nil {
		return false, err
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "favorites", time.Since(start), err) }()

	var n int
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND movie_id = ?`, userID, movieID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

// Count returns how many movies the user saved.
func (s *Favorites) Count(ctx context.Context, userID string) (n int, err error) {
	db, err := connect(ctx, s.handle)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	defer func() { metrics.RecordDBQuery("count", "favorites", time.Since(start), err) }()

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return n, nil
}
