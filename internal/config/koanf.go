// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodreel/config.yaml",
	"/etc/moodreel/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			Environment:     "development",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Inference: InferenceConfig{
			Model:   "gemini-pro",
			BaseURL: "https://generativelanguage.googleapis.com",
			Timeout: 15 * time.Second,
		},
		Catalog: CatalogConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			PosterSize:        "w342",
			BackdropSize:      "w1280",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Database: DatabaseConfig{
			Driver:       "duckdb",
			DSN:          "./data/moodreel.duckdb",
			MaxOpenConns: 10,
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     10 * time.Minute,
		},
		Security: SecurityConfig{
			AuthMode:          "jwt",
			UserHeader:        "X-User-ID",
			CORSOrigins:       []string{"http://localhost:5173"},
			RateLimitWindowMS: 900000,
			RateLimitMax:      100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf layers defaults, the optional YAML file and the environment,
// then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths accept comma-separated strings from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"port":             "server.port",
	"http_port":        "server.port",
	"host":             "server.host",
	"node_env":         "server.environment",
	"environment":      "server.environment",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	"gemini_api_key":  "inference.api_key",
	"gemini_model":    "inference.model",
	"gemini_base_url": "inference.base_url",
	"gemini_timeout":  "inference.timeout",

	"tmdb_api_key":             "catalog.api_key",
	"tmdb_read_token":          "catalog.read_token",
	"tmdb_base_url":            "catalog.base_url",
	"tmdb_image_base_url":      "catalog.image_base_url",
	"tmdb_poster_size":         "catalog.poster_size",
	"tmdb_backdrop_size":       "catalog.backdrop_size",
	"tmdb_timeout":             "catalog.timeout",
	"tmdb_requests_per_second": "catalog.requests_per_second",
	"tmdb_burst":               "catalog.burst",

	"database_driver":         "database.driver",
	"database_url":            "database.dsn",
	"database_max_open_conns": "database.max_open_conns",

	"cache_backend": "cache.backend",
	"cache_ttl":     "cache.ttl",
	"cache_path":    "cache.path",

	"auth_mode":               "security.auth_mode",
	"jwt_secret":              "security.jwt_secret",
	"auth_user_header":        "security.user_header",
	"frontend_url":            "security.cors_origins",
	"cors_origins":            "security.cors_origins",
	"rate_limit_window_ms":    "security.rate_limit_window_ms",
	"rate_limit_max_requests": "security.rate_limit_max",
	"disable_rate_limit":      "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
