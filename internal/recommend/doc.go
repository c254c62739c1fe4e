// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

// Package recommend implements the hybrid listing recommendation engine.
//
// # Architecture
//
// Recommendations are produced from four cooperating parts:
//
//   - Vocabulary: the ordered feature dimensions shared by every vector
//   - Vectorizer: listing attributes encoded as a vector in [0, 1]
//   - Preferences: a user's taste as the mean vector of the listings they liked
//   - Scorer: cosine content similarity plus a collaborative signal from
//     users with similar preference vectors
//
// The Engine orchestrates these and memoizes feature vectors (per listing) and
// preference vectors (per user) in TTL caches.
//
// # Vocabulary Generations
//
// A vocabulary is immutable. The engine keeps one per generation and rebuilds
// it from the reference tables once the generation's freshness window has
// passed. If the rebuilt vocabulary has the same fingerprint, the generation
// simply continues; otherwise every cached vector is dropped, because vectors
// from different vocabularies are not comparable. Each cached vector carries
// the fingerprint it was built under and is ignored when that no longer matches.
//
// Unknown feature names (a tag that appeared after the vocabulary was built)
// are skipped by the vectorizer and counted, so drift shows up in metrics and
// logs instead of silently colliding with dimension 0.
//
// # Usage
//
//	engine, err := recommend.New(recommend.DefaultConfig(), store, logger)
//	if err != nil {
//	    return err
//	}
//
//	recs, err := engine.GetRecommendations(ctx, userID, 20)
//
//	// After a like or unlike:
//	if err := engine.UpdateUserPreferences(ctx, userID); err != nil {
//	    logger.Warn().Err(err).Msg("preference refresh failed")
//	}
//
// # Thread Safety
//
// The engine is safe for concurrent use. Caches are mutex-guarded, the
// generation state has its own lock, and concurrent vocabulary rebuilds are
// coalesced into a single reference-table load.
package recommend
