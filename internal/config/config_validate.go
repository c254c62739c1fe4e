// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid.
// Scoring parameters are validated again by the engine when it is constructed.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateBreaker(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validDrivers defines the supported database drivers
var validDrivers = map[string]bool{
	"duckdb": true,
	"sqlite": true,
}

func (c *Config) validateDatabase() error {
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("DATABASE_DRIVER must be one of: duckdb, sqlite")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DATABASE_QUERY_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateAuthMode(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	if c.Security.AuthMode == "jwt" {
		return c.validateJWTSecret()
	}
	return nil
}

// validAuthModes defines the allowed authentication modes
var validAuthModes = map[string]bool{
	"none": true,
	"jwt":  true,
}

// validateAuthMode checks if auth mode is valid
func (c *Config) validateAuthMode() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt")
	}

	// Header-trusting mode is a development convenience only.
	if c.Security.AuthMode == "none" && c.IsProduction() {
		return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// validateJWTSecret validates the JWT secret configuration
func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.CacheTTL <= 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive")
	}
	if r.PurgeInterval <= 0 {
		return fmt.Errorf("RECOMMEND_PURGE_INTERVAL must be positive")
	}
	if r.MinLikes < 0 {
		return fmt.Errorf("RECOMMEND_MIN_LIKES must not be negative")
	}
	if r.MaxLimit < 0 {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must not be negative")
	}
	if r.DefaultLimit < 1 || (r.MaxLimit > 0 && r.MaxLimit < r.DefaultLimit) {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be at least 1 and not above RECOMMEND_MAX_LIMIT")
	}
	if r.PeerIndex.Enabled && !r.PeerIndex.InMemory && r.PeerIndex.Path == "" {
		return fmt.Errorf("RECOMMEND_PEER_INDEX_PATH is required when the peer index is enabled")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
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

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
