// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package main is the entry point for the Moodreel API server.
//
// # Application Architecture
//
// Components are initialized in this order:
//
//  1. Configuration: Koanf v2 (defaults, config.yaml, environment)
//  2. Logging: zerolog with JSON or console output
//  3. Supervisor Tree: suture v4 with sutureslog events
//  4. Store: DuckDB or MySQL, opened lazily and warmed up by the tree
//  5. Catalog: TMDB client behind a circuit breaker and response cache
//  6. Inference: Gemini client with its own breaker
//  7. HTTP Server: chi router supervised in the api layer
//
// # Configuration
//
// Core environment variables:
//
//	PORT=5000
//	NODE_ENV=development          # production hides upstream error details
//	GEMINI_API_KEY=...            # empty: every mood maps to drama
//	TMDB_API_KEY=...
//	DATABASE_DRIVER=duckdb        # or mysql
//	DATABASE_URL=./data/moodreel.duckdb
//	CACHE_BACKEND=memory          # memory, badger or none
//	AUTH_MODE=jwt                 # or header
//	JWT_SECRET=...
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains for up
// to SHUTDOWN_TIMEOUT, then the cache and store are closed.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tomtom215/moodreel/docs" // swagger spec
	"github.com/tomtom215/moodreel/internal/api"
	"github.com/tomtom215/moodreel/internal/auth"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/database"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/recommend"
	"github.com/tomtom215/moodreel/internal/supervisor"
	"github.com/tomtom215/moodreel/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("database_driver", cfg.Database.Driver).
		Str("cache_backend", cfg.Cache.Backend).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Configuration loaded")

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	// The store opens on first use. Nothing here fails when it is down.
	store := database.NewConfigHandle(&cfg.Database)
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	tree.AddDataService(services.NewStoreWarmupService(store))

	cacheStore, cacheCloser, err := initCache(&cfg.Cache, tree)
	if err != nil {
		return err
	}
	defer func() {
		if err := cacheCloser.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog cache")
		}
	}()

	cat := initCatalog(&cfg.Catalog, cacheStore, cfg.Cache.TTL)
	engine := recommend.NewEngine(initInference(&cfg.Inference), cat)

	identity, err := auth.NewMiddleware(cfg.Security)
	if err != nil {
		return err
	}

	handler := api.NewHandler(cfg, engine, cat, database.NewFavorites(store), database.NewHistory(store), store)
	router := api.NewRouter(handler, identity, api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Security)))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
