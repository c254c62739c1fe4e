// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/roomies/internal/metrics"
	"github.com/tomtom215/roomies/internal/recommend"
)

// CacheMaintainer is the part of the recommendation engine the maintenance
// loop drives.
type CacheMaintainer interface {
	PurgeExpired() int
	Stats() recommend.Stats
}

// PeerCounter reports the size of the persistent peer index.
type PeerCounter interface {
	Count(ctx context.Context) (int, error)
}

// DefaultMaintenanceInterval is used when the configured interval is not positive.
const DefaultMaintenanceInterval = time.Minute

// CacheMaintenanceService purges expired recommendation cache entries on a
// ticker and publishes engine state as Prometheus gauges.
type CacheMaintenanceService struct {
	engine   CacheMaintainer
	peers    PeerCounter
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheMaintenanceService creates the service. peers may be nil when the
// peer index is disabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheMaintenanceService(engine CacheMaintainer, peers PeerCounter, interval time.Duration, logger zerolog.Logger) *CacheMaintenanceService {
	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}
	return &CacheMaintenanceService{
		engine:   engine,
		peers:    peers,
		interval: interval,
		logger:   logger.With().Str("service", "cache-maintenance").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cache maintenance starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache maintenance shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs one maintenance pass.
func (s *CacheMaintenanceService) RunOnce(ctx context.Context) {
	purged := s.engine.PurgeExpired()
	if purged > 0 {
		metrics.RecommendCachePurged.Add(float64(purged))
		s.logger.Debug().Int("purged", purged).Msg("expired cache entries removed")
	}

	metrics.UpdateEngineGauges(engineSnapshot(s.engine.Stats()))

	if s.peers == nil {
		return
	}
	n, err := s.peers.Count(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("peer index count failed")
		return
	}
	metrics.PeerIndexEntries.Set(float64(n))
}

func engineSnapshot(st recommend.Stats) metrics.EngineSnapshot {
	return metrics.EngineSnapshot{
		Generation:       st.Generation,
		VocabularySize:   st.VocabularySize,
		VocabularyMisses: st.VocabularyMisses,
		Caches: []metrics.CacheSnapshot{
			{Name: "feature", Entries: st.FeatureCache.Entries, HitRate: st.FeatureCache.HitRate},
			{Name: "preference", Entries: st.PreferenceCache.Entries, HitRate: st.PreferenceCache.HitRate},
			{Name: "result", Entries: st.ResultCache.Entries, HitRate: st.ResultCache.HitRate},
		},
		UnknownFeatures: st.UnknownFeatures,
	}
}

// String names the service in suture events.
func (s *CacheMaintenanceService) String() string {
	return "cache-maintenance"
}
