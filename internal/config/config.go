// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package config loads Moodreel configuration.
//
// Sources are layered with Koanf v2, later layers winning:
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/moodreel/config.yaml)
//  3. Environment variables (see envMappings)
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Inference InferenceConfig `koanf:"inference"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Environment     string        `koanf:"environment"` // development, production or test
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// InferenceConfig configures the Gemini genre inference client.
type InferenceConfig struct {
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// CatalogConfig configures the TMDB client.
type CatalogConfig struct {
	APIKey            string        `koanf:"api_key"`
	ReadToken         string        `koanf:"read_token"` // v4 bearer token, optional
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	PosterSize        string        `koanf:"poster_size"`
	BackdropSize      string        `koanf:"backdrop_size"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"` // 0 disables the outbound throttle
	Burst             int           `koanf:"burst"`
}

// DatabaseConfig selects the relational store for favorites and history.
type DatabaseConfig struct {
	Driver       string `koanf:"driver"` // duckdb or mysql
	DSN          string `koanf:"dsn"`    // DuckDB file path or MySQL DSN
	MaxOpenConns int    `koanf:"max_open_conns"`
}

// CacheConfig configures the catalog response cache.
type CacheConfig struct {
	Backend string        `koanf:"backend"` // memory, badger or none
	TTL     time.Duration `koanf:"ttl"`
	Path    string        `koanf:"path"` // badger directory; empty runs badger in memory
}

// SecurityConfig holds identity, CORS and rate limiting settings.
type SecurityConfig struct {
	AuthMode          string   `koanf:"auth_mode"` // jwt or header
	JWTSecret         string   `koanf:"jwt_secret"`
	UserHeader        string   `koanf:"user_header"`
	CORSOrigins       []string `koanf:"cors_origins"`
	RateLimitWindowMS int      `koanf:"rate_limit_window_ms"`
	RateLimitMax      int      `koanf:"rate_limit_max"`
	RateLimitDisabled bool     `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RateLimitWindow returns the rate limit window as a duration.
func (s SecurityConfig) RateLimitWindow() time.Duration {
	return time.Duration(s.RateLimitWindowMS) * time.Millisecond
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
