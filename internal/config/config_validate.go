// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package config

import (
	"fmt"
	"net/url"
	"strings"
)

var (
	validEnvironments = map[string]bool{"development": true, "dev": true, "production": true, "prod": true, "test": true}
	validDrivers      = map[string]bool{"duckdb": true, "mysql": true}
	validCacheBackend = map[string]bool{"memory": true, "badger": true, "none": true}
	validAuthModes    = map[string]bool{"jwt": true, "header": true}
	validLogLevels    = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	validLogFormats   = map[string]bool{"json": true, "console": true}
)

// Validate checks ranges, enums and URL shapes.
// Missing API keys are not errors: inference degrades to its fallback and
// the catalog reports upstream failures per request.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateUpstreams(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvironments[strings.ToLower(c.Server.Environment)] {
		return fmt.Errorf("NODE_ENV must be one of: development, production, test")
	}
	return nil
}

func (c *Config) validateUpstreams() error {
	if err := validateHTTPURL(c.Inference.BaseURL, "GEMINI_BASE_URL", false); err != nil {
		return err
	}
	if c.Inference.Timeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be positive")
	}
	if err := validateHTTPURL(c.Catalog.BaseURL, "TMDB_BASE_URL", true); err != nil {
		return err
	}
	if err := validateHTTPURL(c.Catalog.ImageBaseURL, "TMDB_IMAGE_BASE_URL", true); err != nil {
		return err
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must not be negative")
	}
	if c.Catalog.RequestsPerSecond > 0 && c.Catalog.Burst < 1 {
		return fmt.Errorf("TMDB_BURST must be at least 1 when throttling is enabled")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("DATABASE_DRIVER must be one of: duckdb, mysql")
	}
	if c.Database.Driver == "mysql" && c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_URL is required when DATABASE_DRIVER=mysql")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !validCacheBackend[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, badger, none")
	}
	if c.Cache.Backend != "none" && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: jwt, header")
	}
	if c.Security.AuthMode == "jwt" && c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
	}
	if c.Security.AuthMode == "jwt" && c.IsProduction() && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.Security.AuthMode == "header" && c.Security.UserHeader == "" {
		return fmt.Errorf("AUTH_USER_HEADER is required when AUTH_MODE=header")
	}
	if c.Security.RateLimitWindowMS <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_MS must be positive")
	}
	if c.Security.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX_REQUESTS must be positive")
	}
	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("FRONTEND_URL must not be a wildcard in production")
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validateHTTPURL checks scheme, host and the absence of query parameters.
// allowPath permits API prefixes such as TMDB's /3.
func validateHTTPURL(rawURL, fieldName string, allowPath bool) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if !allowPath && u.Path != "" && u.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, u.Path)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}
