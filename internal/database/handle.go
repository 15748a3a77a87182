// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
)

// State is the resolved outcome of opening the database.
// It is either Connected or Unavailable.
type State interface {
	isState()
}

// Connected carries a usable connection.
type Connected struct {
	DB *DB
}

// Unavailable records why the database could not be opened.
type Unavailable struct {
	Reason error
}

func (Connected) isState()   {}
func (Unavailable) isState() {}

// Opener opens the database once.
type Opener func(ctx context.Context) (*DB, error)

// Handle opens the database on first use and caches the outcome, success
// or failure, for the life of the process.
type Handle struct {
	open  Opener
	once  sync.Once
	state State
}

// NewHandle returns a Handle that calls open at most once.
func NewHandle(open Opener) *Handle {
	return &Handle{open: open}
}

// NewConfigHandle returns a Handle that opens cfg.
func NewConfigHandle(cfg *config.DatabaseConfig) *Handle {
	return NewHandle(func(ctx context.Context) (*DB, error) {
		return Open(ctx, cfg)
	})
}

// Get resolves the handle, opening the database on the first call.
func (h *Handle) Get(ctx context.Context) State {
	h.once.Do(func() {
		// The first caller's cancellation must not poison the cached state.
		db, err := h.open(context.WithoutCancel(ctx))
		if err != nil {
			logging.Error().Err(err).Msg("Database unavailable; favorites and history are disabled until restart")
			metrics.SetDBAvailable(false)
			h.state = Unavailable{Reason: err}
			return
		}
		metrics.SetDBAvailable(true)
		h.state = Connected{DB: db}
	})
	return h.state
}

// Close closes the connection if one was opened.
func (h *Handle) Close() error {
	h.once.Do(func() {
		h.state = Unavailable{Reason: errors.New("handle closed before first use")}
	})
	if c, ok := h.state.(Connected); ok {
		return c.DB.Close()
	}
	return nil
}

// connect returns the live DB or ErrStoreUnavailable.
func connect(ctx context.Context, h *Handle) (*DB, error) {
	switch st := h.Get(ctx).(type) {
	case Connected:
		return st.DB, nil
	case Unavailable:
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, st.Reason)
	default:
		return nil, ErrStoreUnavailable
	}
}
