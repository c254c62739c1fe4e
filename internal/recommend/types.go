// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/roomies/internal/models"
)

// ErrNoProvider is returned when the engine is constructed without a data provider.
var ErrNoProvider = errors.New("recommend: data provider is required")

// ErrEmptyUserID is returned when an operation is called without a user id.
var ErrEmptyUserID = errors.New("recommend: user id is required")

// Vector is a feature or preference vector. Every element is in [0, 1] and
// position i has the meaning of the vocabulary's dimension i.
type Vector []float64

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Preferences is a user's preference vector together with how it was derived.
// Values returned by the engine are shared with its cache and must not be mutated.
type Preferences struct {
	UserID string `json:"userId"`

	// Vector is the element-wise mean of the liked listings' feature vectors,
	// or the zero vector when none of them resolved.
	Vector Vector `json:"vector"`

	// LikeCount is the length of the user's like history. It drives the
	// cold-start gate, independent of how many liked listings still exist.
	LikeCount int `json:"likeCount"`

	// Resolved is how many liked listings contributed to Vector.
	Resolved int `json:"resolved"`

	// Fingerprint identifies the vocabulary Vector was built under.
	Fingerprint string `json:"fingerprint"`

	ComputedAt time.Time `json:"computedAt"`
}

// Recommendation is one scored candidate listing.
type Recommendation struct {
	ListingID          string          `json:"listingId"`
	Listing            *models.Listing `json:"listing,omitempty"`
	Score              float64         `json:"score"`
	ContentScore       float64         `json:"contentScore"`
	CollaborativeScore float64         `json:"collaborativeScore"`
	Reasons            []string        `json:"reasons"`
}

// ReferenceSource lists the reference tables that contribute dynamic
// vocabulary dimensions. Names are returned in a stable order.
type ReferenceSource interface {
	RoomAmenityNames(ctx context.Context) ([]string, error)
	PropertyAmenityNames(ctx context.Context) ([]string, error)
	HouseRuleNames(ctx context.Context) ([]string, error)
	CityNames(ctx context.Context) ([]string, error)
}

// DataProvider is the read-only view of the catalog and like history the
// engine needs. It is implemented by the database layer.
type DataProvider interface {
	ReferenceSource

	// LikedListingIDs returns the ids of every listing the user has liked.
	LikedListingIDs(ctx context.Context, userID string) ([]string, error)

	// ListingsByIDs returns the listings that still exist among ids, with
	// their relations loaded. Missing ids are silently absent from the result.
	ListingsByIDs(ctx context.Context, ids []string) ([]models.Listing, error)

	// CandidateListings returns every listing not owned by excludeOwnerID.
	CandidateListings(ctx context.Context, excludeOwnerID string) ([]models.Listing, error)
}

// PeerIndex is a persistent store of preference vectors that widens the
// collaborative peer pool beyond the users currently cached in memory.
type PeerIndex interface {
	SavePreferences(ctx context.Context, userID, fingerprint string, vec []float64) error
	DeletePreferences(ctx context.Context, userID string) error

	// ForEachPeer calls fn for every stored vector built under fingerprint
	// until fn returns false.
	ForEachPeer(ctx context.Context, fingerprint string, fn func(userID string, vec []float64) bool) error
}

// CacheStats summarizes one of the engine's caches.
type CacheStats struct {
	Entries   int64   `json:"entries"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// Stats is a point-in-time snapshot of engine state for logging and metrics.
type Stats struct {
	Generation     uint64    `json:"generation"`
	VocabularySize int       `json:"vocabulary_size"`
	Fingerprint    string    `json:"fingerprint"`
	RefreshedAt    time.Time `json:"refreshed_at"`

	Requests   int64 `json:"requests"`
	ColdStarts int64 `json:"cold_starts"`
	Errors     int64 `json:"errors"`

	// VocabularyChanges counts generations whose fingerprint differed from
	// the previous one.
	VocabularyChanges int64 `json:"vocabulary_changes"`

	// UnknownFeatures counts, per feature kind, names that were not in the
	// vocabulary at vectorization time. Monotonic across generations.
	UnknownFeatures map[string]int64 `json:"unknown_features"`

	// VocabularyMisses counts lookups of absent names against the current
	// vocabulary. It starts over with every generation.
	VocabularyMisses int64 `json:"vocabulary_misses"`

	FeatureCache    CacheStats `json:"feature_cache"`
	PreferenceCache CacheStats `json:"preference_cache"`
	ResultCache     CacheStats `json:"result_cache"`
}
