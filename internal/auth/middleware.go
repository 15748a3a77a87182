// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package auth reads the caller's identity from requests.
//
// Sessions are owned by an upstream identity provider. This package only
// verifies what the provider hands over: an HS256 bearer token (mode "jwt")
// or a trusted header set by a gateway (mode "header").
//
//	mw, err := auth.NewMiddleware(cfg.Security)
//	r.Use(mw.Identify)
//	r.With(mw.RequireUser).Get("/favorites", h.ListFavorites)
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/models"
)

// Identity modes.
const (
	ModeJWT    = "jwt"
	ModeHeader = "header"
)

// DefaultUserHeader is the trusted header read in header mode.
const DefaultUserHeader = "X-User-ID"

// TokenCookie is the cookie consulted when no Authorization header is sent.
const TokenCookie = "token"

type contextKey string

// UserIDContextKey holds the authenticated user id.
const UserIDContextKey contextKey = "user_id"

// ContextWithUserID returns a copy of ctx carrying userID.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// UserID returns the authenticated user id, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDContextKey).(string)
	return id, ok && id != ""
}

// Middleware attaches and enforces caller identity.
type Middleware struct {
	mode       string
	userHeader string
	verifier   *Verifier
}

// NewMiddleware builds the identity middleware for the configured mode.
func NewMiddleware(cfg config.SecurityConfig) (*Middleware, error) {
	m := &Middleware{mode: cfg.AuthMode, userHeader: cfg.UserHeader}
	if m.userHeader == "" {
		m.userHeader = DefaultUserHeader
	}

	switch m.mode {
	case "", ModeJWT:
		m.mode = ModeJWT
		v, err := NewVerifier(cfg.JWTSecret)
		if err != nil {
			return nil, fmt.Errorf("jwt auth mode: %w", err)
		}
		m.verifier = v
	case ModeHeader:
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
	return m, nil
}

// Mode returns the active identity mode.
func (m *Middleware) Mode() string {
	return m.mode
}

// Identify attaches the caller's user id to the request context when the
// request carries a valid identity. Requests without one, or with an invalid
// token, continue anonymously.
func (m *Middleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.identify(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring invalid credentials")
		}
		if userID != "" {
			ctx := ContextWithUserID(r.Context(), userID)
			ctx = logging.ContextWithUserID(ctx, userID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects requests that Identify did not attach a user to.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) identify(r *http.Request) (string, error) {
	if m.mode == ModeHeader {
		return strings.TrimSpace(r.Header.Get(m.userHeader)), nil
	}

	token := extractToken(r)
	if token == "" {
		return "", nil
	}
	return m.verifier.Verify(token)
}

// extractToken reads a bearer token from the Authorization header, falling
// back to the token cookie.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(models.APIResponse{Success: false, Error: "Unauthorized"}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode unauthorized response")
	}
}
