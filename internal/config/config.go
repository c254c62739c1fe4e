// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Infrastructure:
//     - Database: catalog and likes storage (driver, path, query timeout)
//     - Breaker: circuit breaker around storage calls
//     - Server: HTTP server configuration (port, host, timeouts)
//
//  2. Security:
//     - Security: token verification, rate limiting, CORS
//
//  3. Recommendations:
//     - Recommend: scoring weights, limits, cache TTL and the optional peer index
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// DatabaseConfig holds catalog storage settings
type DatabaseConfig struct {
	Driver       string        `koanf:"driver"` // "duckdb" or "sqlite"
	Path         string        `koanf:"path"`
	MaxMemory    string        `koanf:"max_memory"` // DuckDB only
	Threads      int           `koanf:"threads"`    // DuckDB only, 0 = NumCPU
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// BreakerConfig holds circuit breaker settings for storage calls
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"` // allowed through while half-open
	Interval         time.Duration `koanf:"interval"`     // closed-state counter reset period
	Timeout          time.Duration `koanf:"timeout"`      // open-state duration before half-open
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // per-request handler timeout
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful shutdown budget
	Environment     string        `koanf:"environment"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds request authentication and abuse protection settings.
// Tokens are issued elsewhere; this service only verifies them.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // "jwt" or "none"
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTIssuer         string        `koanf:"jwt_issuer"` // optional, checked when set
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings
type RecommendConfig struct {
	ContentWeight       float64 `koanf:"content_weight"`
	CollaborativeWeight float64 `koanf:"collaborative_weight"`

	ContentScale        float64 `koanf:"content_scale"`
	MatchBonus          float64 `koanf:"match_bonus"`
	MatchThreshold      float64 `koanf:"match_threshold"`
	SimilarityThreshold float64 `koanf:"similarity_threshold"`
	CollaborativeScale  float64 `koanf:"collaborative_scale"`
	MaxReasons          int     `koanf:"max_reasons"`

	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"` // 0 means uncapped; the HTTP API enforces its own range
	MinLikes     int `koanf:"min_likes"`

	CacheTTL           time.Duration `koanf:"cache_ttl"`
	ResultCacheEnabled bool          `koanf:"result_cache_enabled"`
	PurgeInterval      time.Duration `koanf:"purge_interval"`

	PeerIndex PeerIndexConfig `koanf:"peer_index"`
}

// PeerIndexConfig holds settings for the persistent preference index
type PeerIndexConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
	// InMemory keeps the index in memory only (tests and demos)
	InMemory bool `koanf:"in_memory"`
}

// Load is the entry point for configuration loading.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
