// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "k3j4h5g6f7d8s9a0q1w2e3r4t5y6u7i8o9p0"

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Database.Driver != "duckdb" {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Database.Path != "/data/roomies.duckdb" {
		t.Errorf("Database.Path = %q, want /data/roomies.duckdb", cfg.Database.Path)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 10*time.Second {
		t.Errorf("Server.Timeout = %v, want 10s", cfg.Server.Timeout)
	}
	if cfg.Security.AuthMode != "jwt" {
		t.Errorf("Security.AuthMode = %q, want jwt", cfg.Security.AuthMode)
	}
	if !cfg.Breaker.Enabled || cfg.Breaker.FailureThreshold != 5 {
		t.Errorf("Breaker = %+v", cfg.Breaker)
	}

	r := cfg.Recommend
	if r.ContentWeight != 0.6 || r.CollaborativeWeight != 0.4 {
		t.Errorf("weights = %v/%v, want 0.6/0.4", r.ContentWeight, r.CollaborativeWeight)
	}
	if r.MinLikes != 3 || r.DefaultLimit != 20 || r.MaxLimit != 0 {
		t.Errorf("limits = %d/%d/%d, want 3/20/0", r.MinLikes, r.DefaultLimit, r.MaxLimit)
	}
	if r.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", r.CacheTTL)
	}
	if r.ResultCacheEnabled {
		t.Error("ResultCacheEnabled should be false by default")
	}
	if r.PeerIndex.Enabled {
		t.Error("PeerIndex.Enabled should be false by default")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"DATABASE_DRIVER", "database.driver"},
		{"DUCKDB_PATH", "database.path"},
		{"DATABASE_PATH", "database.path"},
		{"BREAKER_TIMEOUT", "breaker.timeout"},
		{"HTTP_PORT", "server.port"},
		{"HTTP_TIMEOUT", "server.timeout"},
		{"AUTH_MODE", "security.auth_mode"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"RECOMMEND_MIN_LIKES", "recommend.min_likes"},
		{"RECOMMEND_RESULT_CACHE", "recommend.result_cache_enabled"},
		{"RECOMMEND_PEER_INDEX_ENABLED", "recommend.peer_index.enabled"},
		{"recommend_cache_ttl", "recommend.cache_ttl"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("logging:\n  level: info\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, customPath)

		if got := findConfigFile(); got != customPath {
			t.Errorf("findConfigFile() = %q, want %q", got, customPath)
		}
	})

	t.Run("CONFIG_PATH with missing file falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(tmpDir, "missing.yaml"))

		got := findConfigFile()
		if got == filepath.Join(tmpDir, "missing.yaml") {
			t.Errorf("findConfigFile() returned a missing file")
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("AUTH_MODE", "none")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("RECOMMEND_MIN_LIKES", "5")
	t.Setenv("RECOMMEND_CACHE_TTL", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example.org, https://b.example.org")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Recommend.MinLikes != 5 {
		t.Errorf("Recommend.MinLikes = %d, want 5", cfg.Recommend.MinLikes)
	}
	if cfg.Recommend.CacheTTL != 90*time.Second {
		t.Errorf("Recommend.CacheTTL = %v, want 90s", cfg.Recommend.CacheTTL)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example.org" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}

	// Defaults still apply for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Recommend.DefaultLimit != 20 {
		t.Errorf("Recommend.DefaultLimit = %d, want 20 (default)", cfg.Recommend.DefaultLimit)
	}
}

// TestLoadWithKoanfEnvOverridesFile tests that env vars override the config file
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	configContent := `
database:
  driver: sqlite
  path: ./roomies.db

server:
  port: 8888
  host: "127.0.0.1"

security:
  auth_mode: "none"

logging:
  level: "warn"

recommend:
  min_likes: 2
  peer_index:
    enabled: true
    in_memory: true
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	// From file
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "./roomies.db" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Recommend.MinLikes != 2 {
		t.Errorf("Recommend.MinLikes = %d, want 2", cfg.Recommend.MinLikes)
	}
	if !cfg.Recommend.PeerIndex.Enabled || !cfg.Recommend.PeerIndex.InMemory {
		t.Errorf("PeerIndex = %+v", cfg.Recommend.PeerIndex)
	}

	// Env overrides file
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env override)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env override)", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"jwt with secret", func(c *Config) { c.Security.JWTSecret = testSecret }, ""},
		{"none in development", func(c *Config) { c.Security.AuthMode = "none" }, ""},
		{"jwt without secret", func(c *Config) {}, "JWT_SECRET is required"},
		{"short secret", func(c *Config) { c.Security.JWTSecret = "short" }, "at least 32"},
		{"placeholder secret", func(c *Config) {
			c.Security.JWTSecret = "CHANGEME-CHANGEME-CHANGEME-CHANGEME"
		}, "placeholder"},
		{"none in production", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Server.Environment = "production"
		}, "not allowed"},
		{"unknown auth mode", func(c *Config) { c.Security.AuthMode = "basic" }, "AUTH_MODE"},
		{"unknown driver", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Database.Driver = "postgres"
		}, "DATABASE_DRIVER"},
		{"bad port", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Server.Port = 0
		}, "HTTP_PORT"},
		{"rate limit out of range", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Security.RateLimitReqs = 0
		}, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, ""},
		{"breaker threshold zero", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Breaker.FailureThreshold = 0
		}, "BREAKER_FAILURE_THRESHOLD"},
		{"zero cache ttl", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Recommend.CacheTTL = 0
		}, "RECOMMEND_CACHE_TTL"},
		{"negative max limit", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Recommend.MaxLimit = -1
		}, "RECOMMEND_MAX_LIMIT"},
		{"max limit below default", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Recommend.MaxLimit = 10
		}, "RECOMMEND_DEFAULT_LIMIT"},
		{"max limit set", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Recommend.MaxLimit = 50
		}, ""},
		{"peer index without path", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Recommend.PeerIndex.Enabled = true
			c.Recommend.PeerIndex.Path = ""
		}, "RECOMMEND_PEER_INDEX_PATH"},
		{"bad log level", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Logging.Level = "verbose"
		}, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
