// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

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

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/roomies/config.yaml",
	"/etc/roomies/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       "duckdb",
			Path:         "/data/roomies.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = use runtime.NumCPU()
			QueryTimeout: 5 * time.Second,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			AuthMode:          "jwt",
			JWTSecret:         "",
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			ContentWeight:       0.6,
			CollaborativeWeight: 0.4,
			ContentScale:        100,
			MatchBonus:          10,
			MatchThreshold:      0.5,
			SimilarityThreshold: 0.30,
			CollaborativeScale:  50,
			MaxReasons:          3,
			DefaultLimit:        20,
			MaxLimit:            0,
			MinLikes:            3,
			CacheTTL:            5 * time.Minute,
			ResultCacheEnabled:  false,
			PurgeInterval:       time.Minute,
			PeerIndex: PeerIndexConfig{
				Enabled: false,
				Path:    "/data/peers",
			},
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
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

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Database mappings
	"database_driver":        "database.driver",
	"database_path":          "database.path",
	"duckdb_path":            "database.path",
	"duckdb_max_memory":      "database.max_memory",
	"duckdb_threads":         "database.threads",
	"database_query_timeout": "database.query_timeout",

	// Breaker mappings
	"breaker_enabled":           "breaker.enabled",
	"breaker_max_requests":      "breaker.max_requests",
	"breaker_interval":          "breaker.interval",
	"breaker_timeout":           "breaker.timeout",
	"breaker_failure_threshold": "breaker.failure_threshold",

	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Security mappings
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation engine mappings
	"recommend_content_weight":       "recommend.content_weight",
	"recommend_collaborative_weight": "recommend.collaborative_weight",
	"recommend_content_scale":        "recommend.content_scale",
	"recommend_match_bonus":          "recommend.match_bonus",
	"recommend_match_threshold":      "recommend.match_threshold",
	"recommend_similarity_threshold": "recommend.similarity_threshold",
	"recommend_collaborative_scale":  "recommend.collaborative_scale",
	"recommend_max_reasons":          "recommend.max_reasons",
	"recommend_default_limit":        "recommend.default_limit",
	"recommend_max_limit":            "recommend.max_limit",
	"recommend_min_likes":            "recommend.min_likes",
	"recommend_cache_ttl":            "recommend.cache_ttl",
	"recommend_result_cache":         "recommend.result_cache_enabled",
	"recommend_purge_interval":       "recommend.purge_interval",
	"recommend_peer_index_enabled":   "recommend.peer_index.enabled",
	"recommend_peer_index_path":      "recommend.peer_index.path",
	"recommend_peer_index_in_memory": "recommend.peer_index.in_memory",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables are dropped so unrelated process env never leaks into the config.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - RECOMMEND_MIN_LIKES -> recommend.min_likes
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
