// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines how content and collaborative scores are blended.
	Weights Weights `json:"weights"`

	// Scoring contains the scales, bonuses and thresholds used by the scorer.
	Scoring ScoringConfig `json:"scoring"`

	// Limits contains request limits and the cold-start gate.
	Limits LimitsConfig `json:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache"`
}

// Weights defines the contribution of each signal to the total score.
// Unlike a probability mix they are applied as-is, not normalized.
type Weights struct {
	// Content is the weight of the content score. Default: 0.6.
	Content float64 `json:"content"`

	// Collaborative is the weight of the collaborative score. Default: 0.4.
	Collaborative float64 `json:"collaborative"`
}

// ScoringConfig contains parameters for content and collaborative scoring.
type ScoringConfig struct {
	// ContentScale multiplies the cosine similarity. Default: 100.
	ContentScale float64 `json:"content_scale"`

	// MatchBonus is added for every dimension where the candidate has 1 and
	// the user's preference exceeds MatchThreshold. Default: 10.
	MatchBonus float64 `json:"match_bonus"`

	// MatchThreshold is the preference value a dimension must exceed to earn
	// a bonus. Default: 0.5.
	MatchThreshold float64 `json:"match_threshold"`

	// SimilarityThreshold is the cosine similarity another user's preferences
	// must exceed to count as similar. Default: 0.30.
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// CollaborativeScale multiplies the average similarity of similar users.
	// Default: 50.
	CollaborativeScale float64 `json:"collaborative_scale"`

	// MaxReasons caps the reason strings attached to a recommendation. Default: 3.
	MaxReasons int `json:"max_reasons"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is used when a request asks for zero or fewer results. Default: 20.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the number of results per request. Zero means no cap.
	// Default: 0.
	MaxLimit int `json:"max_limit"`

	// MinLikes is the like count below which a user gets no recommendations. Default: 3.
	MinLikes int `json:"min_likes"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// TTL is both the per-entry lifetime of cached vectors and the freshness
	// window of a vocabulary generation. Default: 5 minutes.
	TTL time.Duration `json:"ttl"`

	// ResultCacheEnabled caches final recommendation lists per user and limit.
	// Default: false, every request rescores from the vector caches.
	ResultCacheEnabled bool `json:"result_cache_enabled"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Content:       0.6,
			Collaborative: 0.4,
		},
		Scoring: ScoringConfig{
			ContentScale:        100,
			MatchBonus:          10,
			MatchThreshold:      0.5,
			SimilarityThreshold: 0.30,
			CollaborativeScale:  50,
			MaxReasons:          3,
		},
		Limits: LimitsConfig{
			DefaultLimit: 20,
			MinLikes:     3,
		},
		Cache: CacheConfig{
			TTL:                5 * time.Minute,
			ResultCacheEnabled: false,
		},
	}
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	if c.Weights.Content < 0 {
		return fmt.Errorf("weights.content must be non-negative, got %f", c.Weights.Content)
	}
	if c.Weights.Collaborative < 0 {
		return fmt.Errorf("weights.collaborative must be non-negative, got %f", c.Weights.Collaborative)
	}
	if c.Weights.Content == 0 && c.Weights.Collaborative == 0 {
		return fmt.Errorf("at least one of weights.content and weights.collaborative must be positive")
	}

	if c.Scoring.ContentScale <= 0 {
		return fmt.Errorf("scoring.content_scale must be positive, got %f", c.Scoring.ContentScale)
	}
	if c.Scoring.MatchBonus < 0 {
		return fmt.Errorf("scoring.match_bonus must be non-negative, got %f", c.Scoring.MatchBonus)
	}
	if c.Scoring.MatchThreshold < 0 || c.Scoring.MatchThreshold > 1 {
		return fmt.Errorf("scoring.match_threshold must be in [0, 1], got %f", c.Scoring.MatchThreshold)
	}
	if c.Scoring.SimilarityThreshold < 0 || c.Scoring.SimilarityThreshold > 1 {
		return fmt.Errorf("scoring.similarity_threshold must be in [0, 1], got %f", c.Scoring.SimilarityThreshold)
	}
	if c.Scoring.CollaborativeScale < 0 {
		return fmt.Errorf("scoring.collaborative_scale must be non-negative, got %f", c.Scoring.CollaborativeScale)
	}
	if c.Scoring.MaxReasons < 0 {
		return fmt.Errorf("scoring.max_reasons must be non-negative, got %d", c.Scoring.MaxReasons)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < 0 {
		return fmt.Errorf("limits.max_limit must be non-negative, got %d", c.Limits.MaxLimit)
	}
	if c.Limits.MaxLimit > 0 && c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.MinLikes < 0 {
		return fmt.Errorf("limits.min_likes must be non-negative, got %d", c.Limits.MinLikes)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}
