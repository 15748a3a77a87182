// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/database"
)

func TestStoreWarmupService(t *testing.T) {
	t.Run("connected store", func(t *testing.T) {
		h := database.NewConfigHandle(&config.DatabaseConfig{
			Driver: database.DriverDuckDB,
			DSN:    filepath.Join(t.TempDir(), "warmup.duckdb"),
		})
		t.Cleanup(func() { _ = h.Close() })

		err := NewStoreWarmupService(h).Serve(context.Background())
		if !errors.Is(err, suture.ErrDoNotRestart) {
			t.Fatalf("Serve() = %v, want ErrDoNotRestart", err)
		}
		if _, ok := h.Get(context.Background()).(database.Connected); !ok {
			t.Error("store not opened by warmup")
		}
	})

	t.Run("unavailable store", func(t *testing.T) {
		h := database.NewHandle(func(context.Context) (*database.DB, error) {
			return nil, errors.New("connection refused")
		})

		svc := NewStoreWarmupService(h)
		if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
			t.Fatalf("Serve() = %v, want ErrDoNotRestart", err)
		}
		if _, ok := h.Get(context.Background()).(database.Unavailable); !ok {
			t.Error("expected the failure to stick")
		}
		if svc.String() != "store-warmup" {
			t.Errorf("String() = %q", svc.String())
		}
	})
}
