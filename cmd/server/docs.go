// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package main provides the Moodreel HTTP server
//
// Moodreel turns a free-text mood into movie recommendations.
//
// @title Movie Recommendation API
// @version 1.0.0
// @description Mood-based movie recommendations backed by Gemini genre inference and the TMDB catalog.
// @description
// @description ## Envelope
// @description
// @description Every endpoint except `/api/health` and `/` answers with:
// @description ```json
// @description { "success": true, "data": {}, "message": "optional" }
// @description ```
// @description and on failure:
// @description ```json
// @description { "success": false, "error": "Human-readable message", "details": [] }
// @description ```
// @description
// @description ## Identity
// @description
// @description Favorites and history require a caller identity: a JWT bearer token
// @description (or `token` cookie) whose subject is the user id, or a trusted gateway
// @description header when AUTH_MODE=header.
// @description
// @description ## Rate Limiting
// @description
// @description Default: 100 requests per 15 minutes per client IP across `/api`.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/moodreel/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /api
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token. Format: "Bearer <token>".
//
// @tag.name Mood
// @tag.description Mood analysis and recommendations
//
// @tag.name Movies
// @tag.description Catalog browsing: search, popular, trending and details
//
// @tag.name Favorites
// @tag.description Per-user saved movies
//
// @tag.name History
// @tag.description Per-user mood recommendation history
//
// @tag.name Core
// @tag.description Health and service information
package main
