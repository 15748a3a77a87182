// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/moodreel/internal/auth"
	"github.com/tomtom215/moodreel/internal/middleware"
)

// apiPrefix is the mount point of the REST surface.
const apiPrefix = "/api"

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	identity      *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router.
func NewRouter(handler *Handler, identity *auth.Middleware, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, identity: identity, chiMiddleware: chiMW}
}

// Setup builds the route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Route(apiPrefix, func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)
		r.Use(router.identity.Identify)

		r.NotFound(notFound)
		r.MethodNotAllowed(methodNotAllowed)

		r.Get("/health", router.handler.Health)

		r.Post("/mood/recommend", router.handler.MoodRecommend)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/search", router.handler.SearchMovies)
			r.Get("/popular", router.handler.PopularMovies)
			r.Get("/trending", router.handler.TrendingMovies)
			r.Get("/{id}", router.handler.MovieDetails)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.identity.RequireUser)

			r.Route("/favorites", func(r chi.Router) {
				r.Post("/", router.handler.AddFavorite)
				r.Get("/", router.handler.ListFavorites)
				r.Get("/check/{id}", router.handler.CheckFavorite)
				r.Delete("/{id}", router.handler.RemoveFavorite)
			})

			r.Route("/history", func(r chi.Router) {
				r.Get("/", router.handler.ListHistory)
				r.Delete("/", router.handler.ClearHistory)
				r.Delete("/{id}", router.handler.DeleteHistoryEntry)
			})
		})
	})

	r.Get("/", router.handler.Info)

	// Observability
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, fmt.Sprintf("Route %s not found", sanitizeLogValue(r.URL.RequestURI())))
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
