// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package catalog

import (
	"strings"

	"github.com/tomtom215/moodreel/internal/genre"
	"github.com/tomtom215/moodreel/internal/models"
)

// tmdbMovie covers both list results (genre_ids) and details (genres).
type tmdbMovie struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Overview     *string     `json:"overview"`
	PosterPath   *string     `json:"poster_path"`
	BackdropPath *string     `json:"backdrop_path"`
	VoteAverage  float64     `json:"vote_average"`
	ReleaseDate  string      `json:"release_date"`
	GenreIDs     []int       `json:"genre_ids"`
	Genres       []tmdbGenre `json:"genres"`
}

type tmdbGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type pageResponse struct {
	Page         int         `json:"page"`
	Results      []tmdbMovie `json:"results"`
	TotalResults int         `json:"total_results"`
	TotalPages   int         `json:"total_pages"`
}

type imageConfig struct {
	baseURL      string
	posterSize   string
	backdropSize string
}

// url joins base, size and path; nil when the record has no image.
func (ic imageConfig) url(size string, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := ic.baseURL + "/" + size + *path
	return &u
}

func (c *Client) normalizeAll(raw []tmdbMovie) []models.Movie {
	movies := make([]models.Movie, 0, len(raw))
	for i := range raw {
		movies = append(movies, c.normalize(raw[i]))
	}
	return movies
}

func (c *Client) normalize(m tmdbMovie) models.Movie {
	movie := models.Movie{
		ID:          m.ID,
		Title:       m.Title,
		PosterURL:   c.images.url(c.images.posterSize, m.PosterPath),
		BackdropURL: c.images.url(c.images.backdropSize, m.BackdropPath),
		Rating:      m.VoteAverage,
		ReleaseDate: m.ReleaseDate,
		Genres:      genresOf(m),
	}
	if m.Overview != nil {
		movie.Overview = *m.Overview
	}
	return movie
}

// genresOf prefers genre_ids, then inline genre names, then nothing.
func genresOf(m tmdbMovie) []string {
	if m.GenreIDs != nil {
		return genre.IDsToNames(m.GenreIDs)
	}
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		if name, ok := genre.Normalize(g.Name); ok {
			names = append(names, name)
			continue
		}
		names = append(names, strings.ToLower(g.Name))
	}
	return names
}
