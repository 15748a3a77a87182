// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package services

import (
	"context"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/moodreel/internal/database"
	"github.com/tomtom215/moodreel/internal/logging"
)

// StoreResolver is satisfied by *database.Handle.
type StoreResolver interface {
	Get(ctx context.Context) database.State
}

// StoreWarmupService opens the relational store once at startup.
type StoreWarmupService struct {
	store StoreResolver
}

// NewStoreWarmupService returns a warmup service for store.
func NewStoreWarmupService(store StoreResolver) *StoreWarmupService {
	return &StoreWarmupService{store: store}
}

// Serve resolves the store and removes itself from the tree. An unavailable
// store is logged, not retried: the outcome is fixed until restart.
func (s *StoreWarmupService) Serve(ctx context.Context) error {
	switch st := s.store.Get(ctx).(type) {
	case database.Connected:
		logging.Info().Str("driver", st.DB.Driver()).Msg("Favorites and history store ready")
	case database.Unavailable:
		logging.Warn().Err(st.Reason).Msg("Favorites and history store unavailable; serving catalog routes only")
	}
	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer.
func (s *StoreWarmupService) String() string {
	return "store-warmup"
}
