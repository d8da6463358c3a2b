// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

// Package config provides centralized configuration for all Gastrograph
// components: HTTP server, database, place-search collaborator, the
// recommendation engine, security, and logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all settings
//  2. Config File: optional YAML config file (config.yaml)
//  3. Environment Variables: override any setting (SERVER_PORT, PLACES_API_KEY, ...)
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Places    PlacesConfig    `koanf:"places"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - SERVER_HOST: bind address (default: 0.0.0.0)
//   - SERVER_PORT: listen port (default: 8452)
//   - SERVER_TIMEOUT: read/write timeout (default: 30s)
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development or production
}

// DatabaseConfig holds DuckDB settings for the keyword-rule store.
//
// Environment Variables:
//   - DATABASE_PATH: DuckDB file path; empty = in-memory (default: /data/gastrograph.duckdb)
//   - DATABASE_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DATABASE_THREADS: query threads, 0 = runtime.NumCPU() (default: 0)
//   - DATABASE_SEED_RULES: seed the built-in condition rules at startup (default: true)
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
	SeedRules bool   `koanf:"seed_rules"`
}

// PlacesConfig holds the external place-search collaborator settings.
//
// Environment Variables:
//   - PLACES_BASE_URL: place-search API base URL
//   - PLACES_API_KEY: API key; empty disables authenticated requests
//   - PLACES_TIMEOUT: per-call HTTP timeout (default: 5s)
//   - PLACES_PAGE_SIZE: results requested per keyword search (default: 15)
type PlacesConfig struct {
	BaseURL  string        `koanf:"base_url"`
	APIKey   string        `koanf:"api_key"`
	Timeout  time.Duration `koanf:"timeout"`
	PageSize int           `koanf:"page_size"`
}

// RecommendConfig holds the recommendation engine settings. The scoring
// rules and catalog tables themselves are compile-time constants in the
// recommend package; this struct only tunes request handling limits.
type RecommendConfig struct {
	// DefaultRadius is the search radius in meters when the request omits one.
	DefaultRadius int `koanf:"default_radius"`

	// MinRadius and MaxRadius bound the caller-supplied radius.
	MinRadius int `koanf:"min_radius"`
	MaxRadius int `koanf:"max_radius"`

	// CandidateLimit caps the merged fanout candidate list.
	CandidateLimit int `koanf:"candidate_limit"`

	// RuleLimit is the default result cap for the condition-rule path.
	RuleLimit int `koanf:"rule_limit"`

	// CacheEnabled enables the in-memory response cache.
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTL is how long cached responses stay valid.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds rate limiting and CORS settings.
//
// Environment Variables:
//   - SECURITY_RATE_LIMIT_REQS: requests per window per client (default: 100)
//   - SECURITY_RATE_LIMIT_WINDOW: rate limit window (default: 1m)
//   - SECURITY_CORS_ORIGINS: comma-separated allowed origins (default: *)
type SecurityConfig struct {
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port address the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the configuration for malformed or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	if c.Places.BaseURL == "" {
		return fmt.Errorf("places.base_url must not be empty")
	}
	if c.Places.Timeout <= 0 {
		return fmt.Errorf("places.timeout must be positive, got %s", c.Places.Timeout)
	}
	if c.Places.PageSize < 1 || c.Places.PageSize > 45 {
		return fmt.Errorf("places.page_size must be in 1..45, got %d", c.Places.PageSize)
	}

	if c.Recommend.MinRadius <= 0 || c.Recommend.MaxRadius < c.Recommend.MinRadius {
		return fmt.Errorf("recommend radius bounds invalid: min=%d max=%d",
			c.Recommend.MinRadius, c.Recommend.MaxRadius)
	}
	if c.Recommend.DefaultRadius < c.Recommend.MinRadius || c.Recommend.DefaultRadius > c.Recommend.MaxRadius {
		return fmt.Errorf("recommend.default_radius %d outside bounds [%d, %d]",
			c.Recommend.DefaultRadius, c.Recommend.MinRadius, c.Recommend.MaxRadius)
	}
	if c.Recommend.CandidateLimit < 1 {
		return fmt.Errorf("recommend.candidate_limit must be positive, got %d", c.Recommend.CandidateLimit)
	}
	if c.Recommend.RuleLimit < 1 {
		return fmt.Errorf("recommend.rule_limit must be positive, got %d", c.Recommend.RuleLimit)
	}

	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}
