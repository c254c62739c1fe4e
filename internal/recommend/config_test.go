// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"content weight", cfg.Weights.Content, 0.6},
		{"collaborative weight", cfg.Weights.Collaborative, 0.4},
		{"content scale", cfg.Scoring.ContentScale, 100},
		{"match bonus", cfg.Scoring.MatchBonus, 10},
		{"match threshold", cfg.Scoring.MatchThreshold, 0.5},
		{"similarity threshold", cfg.Scoring.SimilarityThreshold, 0.30},
		{"collaborative scale", cfg.Scoring.CollaborativeScale, 50},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if cfg.Limits.DefaultLimit != 20 || cfg.Limits.MaxLimit != 0 || cfg.Limits.MinLikes != 3 {
		t.Errorf("Limits = %+v", cfg.Limits)
	}
	if cfg.Scoring.MaxReasons != 3 {
		t.Errorf("MaxReasons = %d, want 3", cfg.Scoring.MaxReasons)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Cache.ResultCacheEnabled {
		t.Error("result cache should be disabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"content only", func(c *Config) { c.Weights.Collaborative = 0 }, false},
		{"collaborative only", func(c *Config) { c.Weights.Content = 0 }, false},
		{"negative content weight", func(c *Config) { c.Weights.Content = -0.1 }, true},
		{"negative collaborative weight", func(c *Config) { c.Weights.Collaborative = -1 }, true},
		{"both weights zero", func(c *Config) { c.Weights = Weights{} }, true},
		{"zero content scale", func(c *Config) { c.Scoring.ContentScale = 0 }, true},
		{"negative match bonus", func(c *Config) { c.Scoring.MatchBonus = -1 }, true},
		{"zero match bonus", func(c *Config) { c.Scoring.MatchBonus = 0 }, false},
		{"match threshold above one", func(c *Config) { c.Scoring.MatchThreshold = 1.5 }, true},
		{"similarity threshold negative", func(c *Config) { c.Scoring.SimilarityThreshold = -0.1 }, true},
		{"similarity threshold one", func(c *Config) { c.Scoring.SimilarityThreshold = 1 }, false},
		{"negative collaborative scale", func(c *Config) { c.Scoring.CollaborativeScale = -5 }, true},
		{"negative max reasons", func(c *Config) { c.Scoring.MaxReasons = -1 }, true},
		{"zero default limit", func(c *Config) { c.Limits.DefaultLimit = 0 }, true},
		{"max below default", func(c *Config) { c.Limits.MaxLimit = 10 }, true},
		{"negative max", func(c *Config) { c.Limits.MaxLimit = -1 }, true},
		{"max equals default", func(c *Config) { c.Limits.MaxLimit = 20 }, false},
		{"negative min likes", func(c *Config) { c.Limits.MinLikes = -1 }, true},
		{"zero min likes", func(c *Config) { c.Limits.MinLikes = 0 }, false},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	original := DefaultConfig()
	clone := original.Clone()

	clone.Weights.Content = 0.9
	clone.Limits.MinLikes = 7
	clone.Cache.ResultCacheEnabled = true

	if original.Weights.Content != 0.6 || original.Limits.MinLikes != 3 || original.Cache.ResultCacheEnabled {
		t.Error("modifying the clone changed the original")
	}
}
