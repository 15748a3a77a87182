// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodreel/internal/auth"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/models"
)

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode: %v (body %s)", err, rec.Body.String())
	}
}

func TestHealth_IsBare(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/health", "", nil)
	expectStatus(t, rec, http.StatusOK)

	var raw map[string]interface{}
	decodeJSONBody(t, rec, &raw)
	if _, wrapped := raw["success"]; wrapped {
		t.Errorf("health is wrapped in the envelope: %v", raw)
	}
	if raw["status"] != "ok" || raw["service"] != ServiceName {
		t.Errorf("health = %v", raw)
	}
	ts, _ := raw["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Errorf("timestamp %q: %v", ts, err)
	}
	if _, ok := raw["database"]; ok {
		t.Error("database reported without a store")
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/", "", nil)
	expectStatus(t, rec, http.StatusOK)

	var info models.APIInfo
	decodeJSONBody(t, rec, &info)
	if info.Message != "AI-Powered Movie Recommendation API" || info.Version != "1.0.0" {
		t.Errorf("info = %+v", info)
	}
	for _, key := range []string{"health", "movies", "mood", "favorites", "history"} {
		if info.Endpoints[key] == "" {
			t.Errorf("endpoint %q missing", key)
		}
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	for _, target := range []string{"/nope", "/api/nope?x=1"} {
		rec := env.do(t, http.MethodGet, target, "", nil)
		expectStatus(t, rec, http.StatusNotFound)
		body := decodeEnvelope(t, rec)
		if body.Success || body.Error != "Route "+target+" not found" {
			t.Errorf("%s: body = %+v", target, body)
		}
	}

	rec := env.do(t, http.MethodPut, "/api/mood/recommend", "", nil)
	expectStatus(t, rec, http.StatusMethodNotAllowed)
	if body := decodeEnvelope(t, rec); body.Error != "Method not allowed" {
		t.Errorf("body = %+v", body)
	}
}

func TestSecurityAndRequestIDHeaders(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/movies/trending", "", nil)
	expectStatus(t, rec, http.StatusOK)

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/favorites", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("credentials not allowed")
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/favorites", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, withSecurity(func(s *config.SecurityConfig) {
		s.RateLimitMax = 2
		s.RateLimitWindowMS = int((time.Hour).Milliseconds())
	}))

	for i := 0; i < 2; i++ {
		expectStatus(t, env.do(t, http.MethodGet, "/api/movies/trending", "", nil), http.StatusOK)
	}
	rec := env.do(t, http.MethodGet, "/api/movies/trending", "", nil)
	expectStatus(t, rec, http.StatusTooManyRequests)
	if body := decodeEnvelope(t, rec); body.Success || body.Error != "Too many requests, please try again later." {
		t.Errorf("body = %+v", body)
	}

	// Outside /api nothing is limited.
	expectStatus(t, env.do(t, http.MethodGet, "/", "", nil), http.StatusOK)
}

func TestRateLimitDisabled(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, withSecurity(func(s *config.SecurityConfig) {
		s.RateLimitMax = 1
		s.RateLimitDisabled = true
	}))
	for i := 0; i < 5; i++ {
		expectStatus(t, env.do(t, http.MethodGet, "/api/movies/trending", "", nil), http.StatusOK)
	}
}

func TestHeaderIdentityMode(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, withSecurity(func(s *config.SecurityConfig) {
		s.AuthMode = auth.ModeHeader
		s.UserHeader = "X-User-ID"
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("X-User-ID", "gateway-user")
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)

	expectStatus(t, env.do(t, http.MethodGet, "/api/favorites", "", nil), http.StatusUnauthorized)
}

func TestObservabilityRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/api/movies/popular", "", nil)

	rec := env.do(t, http.MethodGet, "/metrics", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output lacks api_requests_total")
	}

	rec = env.do(t, http.MethodGet, "/swagger/index.html", "", nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestGzipResponses(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/movies/popular", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("Content-Encoding = %q", rec.Header().Get("Content-Encoding"))
	}
}

func TestNewChiMiddlewareConfig(t *testing.T) {
	t.Parallel()

	cfg := NewChiMiddlewareConfig(config.SecurityConfig{
		AuthMode:          auth.ModeHeader,
		UserHeader:        "X-Forwarded-User",
		CORSOrigins:       []string{"https://app.example"},
		RateLimitWindowMS: 60000,
		RateLimitMax:      7,
	})

	if cfg.RateLimitRequests != 7 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d per %v", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if cfg.CORSAllowedOrigins[0] != "https://app.example" {
		t.Errorf("origins = %v", cfg.CORSAllowedOrigins)
	}
	found := false
	for _, h := range cfg.CORSAllowedHeaders {
		if h == "X-Forwarded-User" {
			found = true
		}
	}
	if !found {
		t.Errorf("user header not allowed by CORS: %v", cfg.CORSAllowedHeaders)
	}
}
