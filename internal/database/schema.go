// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"context"
	"fmt"
)

// Genres are stored as JSON text in both dialects so one code path reads
// and writes them.
var duckdbSchema = []string{
	`CREATE TABLE IF NOT EXISTS favorites (
		id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		movie_id BIGINT NOT NULL,
		title VARCHAR NOT NULL,
		poster_path VARCHAR,
		overview VARCHAR,
		rating DOUBLE,
		release_date VARCHAR,
		genres VARCHAR NOT NULL,
		added_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, movie_id)
	)`,
	`CREATE TABLE IF NOT EXISTS search_history (
		id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		mood VARCHAR NOT NULL,
		genres VARCHAR NOT NULL,
		movie_count INTEGER NOT NULL,
		searched_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_search_history_user ON search_history (user_id, searched_at)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS favorites (
		id CHAR(36) NOT NULL PRIMARY KEY,
		user_id VARCHAR(191) NOT NULL,
		movie_id BIGINT NOT NULL,
		title VARCHAR(500) NOT NULL,
		poster_path TEXT NULL,
		overview TEXT NULL,
		rating DOUBLE NULL,
		release_date VARCHAR(32) NULL,
		genres TEXT NOT NULL,
		added_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_favorites_user_movie (user_id, movie_id),
		KEY idx_favorites_user_added (user_id, added_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS search_history (
		id CHAR(36) NOT NULL PRIMARY KEY,
		user_id VARCHAR(191) NOT NULL,
		mood VARCHAR(500) NOT NULL,
		genres TEXT NOT NULL,
		movie_count INT NOT NULL,
		searched_at DATETIME(6) NOT NULL,
		KEY idx_search_history_user (user_id, searched_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

func (db *DB) migrate(ctx context.Context) error {
	stmts := duckdbSchema
	if db.driver == DriverMySQL {
		stmts = mysqlSchema
	}
	for _, stmt := range stmts {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
