// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

// Package app assembles the storage, recommendation and like components
// shared by the server and the admin CLI.
package app

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/roomies/internal/config"
	"github.com/tomtom215/roomies/internal/database"
	"github.com/tomtom215/roomies/internal/likes"
	"github.com/tomtom215/roomies/internal/recommend"
	"github.com/tomtom215/roomies/internal/recommend/peerindex"
)

// Components are the long-lived objects built from the configuration.
type Components struct {
	DB *database.DB

	// Breaker wraps DB for the engine. Nil when breaker.enabled is false.
	Breaker *database.BreakerStore

	// PeerIndex is nil when recommend.peer_index.enabled is false.
	PeerIndex *peerindex.Store

	Engine *recommend.Engine
	Likes  *likes.Service
}

// EngineConfig maps the recommend section of the application config onto
// the engine's configuration.
func EngineConfig(cfg *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		Weights: recommend.Weights{
			Content:       cfg.ContentWeight,
			Collaborative: cfg.CollaborativeWeight,
		},
		Scoring: recommend.ScoringConfig{
			ContentScale:        cfg.ContentScale,
			MatchBonus:          cfg.MatchBonus,
			MatchThreshold:      cfg.MatchThreshold,
			SimilarityThreshold: cfg.SimilarityThreshold,
			CollaborativeScale:  cfg.CollaborativeScale,
			MaxReasons:          cfg.MaxReasons,
		},
		Limits: recommend.LimitsConfig{
			DefaultLimit: cfg.DefaultLimit,
			MaxLimit:     cfg.MaxLimit,
			MinLikes:     cfg.MinLikes,
		},
		Cache: recommend.CacheConfig{
			TTL:                cfg.CacheTTL,
			ResultCacheEnabled: cfg.ResultCacheEnabled,
		},
	}
}

// Bootstrap opens the database and peer index and builds the engine and
// like service on top of them. On error everything opened so far is closed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Bootstrap(cfg *config.Config, logger zerolog.Logger) (*Components, error) {
	c := &Components{}
	ok := false
	defer func() {
		if !ok {
			if err := c.Close(); err != nil {
				logger.Warn().Err(err).Msg("cleanup after failed bootstrap")
			}
		}
	}()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	c.DB = db

	var provider recommend.DataProvider = c.DB
	if cfg.Breaker.Enabled {
		c.Breaker = database.NewBreakerStore(c.DB, cfg.Breaker)
		provider = c.Breaker
	}

	var opts []recommend.Option
	if cfg.Recommend.PeerIndex.Enabled {
		peers, err := peerindex.Open(peerindex.Config{
			Path:     cfg.Recommend.PeerIndex.Path,
			InMemory: cfg.Recommend.PeerIndex.InMemory,
		})
		if err != nil {
			return nil, fmt.Errorf("open peer index: %w", err)
		}
		c.PeerIndex = peers
		opts = append(opts, recommend.WithPeerIndex(c.PeerIndex))
	}

	c.Engine, err = recommend.New(EngineConfig(&cfg.Recommend), provider, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	c.Likes = likes.NewService(c.DB, c.Engine, logger)

	logger.Info().
		Str("driver", c.DB.Driver()).
		Bool("circuit_breaker", c.Breaker != nil).
		Bool("peer_index", c.PeerIndex != nil).
		Bool("result_cache", cfg.Recommend.ResultCacheEnabled).
		Msg("components ready")

	ok = true
	return c, nil
}

// Close releases the peer index and the database.
func (c *Components) Close() error {
	var errs []error
	if c.PeerIndex != nil {
		if err := c.PeerIndex.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close peer index: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
