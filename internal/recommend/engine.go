// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/roomies/internal/cache"
	"github.com/tomtom215/roomies/internal/models"
)

// Engine produces ranked listing recommendations. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	now    func() time.Time

	provider DataProvider
	peers    PeerIndex

	features    *cache.Cache[featureEntry]
	preferences *cache.Cache[*Preferences]
	results     *cache.Cache[resultEntry]

	genMu  sync.Mutex
	gen    generation
	builds singleflight.Group

	// prefMu guards prefEpoch and prefVersions. A computation may only cache
	// what it read if the user's token is unchanged when it commits.
	prefMu       sync.Mutex
	prefEpoch    uint64
	prefVersions map[string]uint64

	unknownMu     sync.Mutex
	unknownByKind map[string]int64

	requestCount      atomic.Int64
	coldStarts        atomic.Int64
	errorCount        atomic.Int64
	vocabularyChanges atomic.Int64
}

// generation is the vocabulary currently in effect and when it was last confirmed fresh.
type generation struct {
	vocab       *Vocabulary
	number      uint64
	refreshedAt time.Time
}

// prefToken identifies the state of a user's like history as seen by the engine.
type prefToken struct {
	epoch   uint64
	version uint64
}

// vocabularyBuildTimeout bounds a shared vocabulary build, which runs
// detached from the context of the request that started it.
const vocabularyBuildTimeout = 30 * time.Second

type featureEntry struct {
	vector      Vector
	fingerprint string
}

type resultEntry struct {
	recommendations []Recommendation
	fingerprint     string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now for cache expiry and generation freshness.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithPeerIndex adds a persistent preference index to the collaborative peer pool.
func WithPeerIndex(idx PeerIndex) Option {
	return func(e *Engine) {
		e.peers = idx
	}
}

// New creates a recommendation engine over provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *Config, provider DataProvider, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, ErrNoProvider
	}

	e := &Engine{
		config:        cfg.Clone(),
		logger:        logger.With().Str("component", "recommend").Logger(),
		now:           time.Now,
		provider:      provider,
		unknownByKind: make(map[string]int64),
		prefVersions:  make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(e)
	}

	ttl := e.config.Cache.TTL
	e.features = cache.New[featureEntry](ttl, cache.WithClock(e.now))
	e.preferences = cache.New[*Preferences](ttl, cache.WithClock(e.now))
	e.results = cache.New[resultEntry](ttl, cache.WithClock(e.now))

	e.logger.Debug().
		Dur("cache_ttl", e.features.TTL()).
		Bool("result_cache", e.config.Cache.ResultCacheEnabled).
		Msg("recommendation engine ready")

	return e, nil
}

// GetRecommendations returns up to limit listings for userID, highest score first.
//
// A limit of zero or less means the configured default. Limits above a
// positive MaxLimit are capped. Users with fewer likes than the cold-start threshold get an empty
// list. The user's own listings are never returned, and neither is any
// candidate scoring zero or less.
func (e *Engine) GetRecommendations(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	start := time.Now()
	e.requestCount.Add(1)
	limit = e.resolveLimit(limit)
	logger := e.logger.With().Str("user_id", userID).Int("limit", limit).Logger()

	vocab, err := e.Vocabulary(ctx)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	if recs, ok := e.cachedResult(userID, limit, vocab.Fingerprint()); ok {
		logger.Debug().Int("returned", len(recs)).Msg("result cache hit")
		return recs, nil
	}

	token := e.tokenFor(userID)
	prefs, err := e.userPreferences(ctx, vocab, userID, true)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("get user preferences: %w", err)
	}

	if prefs.LikeCount < e.config.Limits.MinLikes {
		e.coldStarts.Add(1)
		logger.Debug().
			Int("likes", prefs.LikeCount).
			Int("min_likes", e.config.Limits.MinLikes).
			Msg("cold start, no recommendations")
		return []Recommendation{}, nil
	}

	candidates, err := e.provider.CandidateListings(ctx, userID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("get candidates: %w", err)
	}

	recs, err := e.scoreCandidates(ctx, vocab, userID, prefs, candidates)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	sortRecommendations(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}

	e.storeResult(userID, token, limit, vocab.Fingerprint(), recs)

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(recs)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return recs, nil
}

// scoreCandidates scores every candidate not owned by userID and keeps the
// ones with a positive score.
func (e *Engine) scoreCandidates(ctx context.Context, vocab *Vocabulary, userID string, prefs *Preferences, candidates []models.Listing) ([]Recommendation, error) {
	scorer := NewScorer(e.config.Weights, e.config.Scoring, vocab)
	collab := scorer.Collaborative(prefs.Vector, e.peerVectors(ctx, userID, vocab.Fingerprint()))

	recs := make([]Recommendation, 0, len(candidates))
	for i := range candidates {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		listing := candidates[i]
		if listing.OwnerID == userID {
			continue
		}

		rec := scorer.Score(prefs.Vector, e.featureVector(vocab, &listing), collab)
		if rec.Score <= 0 {
			continue
		}
		rec.ListingID = listing.ID
		rec.Listing = &listing
		recs = append(recs, rec)
	}

	return recs, nil
}

// sortRecommendations orders by score descending, then listing id ascending.
func sortRecommendations(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ListingID < recs[j].ListingID
	})
}

// resolveLimit applies the default limit and, when one is set, the maximum.
func (e *Engine) resolveLimit(limit int) int {
	if limit <= 0 {
		return e.config.Limits.DefaultLimit
	}
	if maxLimit := e.config.Limits.MaxLimit; maxLimit > 0 && limit > maxLimit {
		return maxLimit
	}
	return limit
}

// Vocabulary returns the vocabulary of the current generation, building it
// from the reference tables when there is none or its freshness window has
// passed.
//
// Concurrent callers share one build. The build does not inherit any caller's
// cancellation; a caller whose ctx ends stops waiting and gets ctx.Err().
func (e *Engine) Vocabulary(ctx context.Context) (*Vocabulary, error) {
	e.genMu.Lock()
	vocab := e.gen.vocab
	fresh := vocab != nil && !e.now().After(e.gen.refreshedAt.Add(e.config.Cache.TTL))
	e.genMu.Unlock()

	if fresh {
		return vocab, nil
	}

	ch := e.builds.DoChan("vocabulary", func() (interface{}, error) {
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), vocabularyBuildTimeout)
		defer cancel()
		return e.refreshGeneration(buildCtx)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("build vocabulary: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("build vocabulary: %w", res.Err)
		}
		return res.Val.(*Vocabulary), nil
	}
}

// refreshGeneration rebuilds the vocabulary. An unchanged fingerprint keeps
// the current generation and its caches; a changed one starts a new
// generation and drops every cached vector.
func (e *Engine) refreshGeneration(ctx context.Context) (*Vocabulary, error) {
	built, err := BuildVocabulary(ctx, e.provider)
	if err != nil {
		return nil, err
	}

	e.genMu.Lock()
	defer e.genMu.Unlock()

	prev := e.gen.vocab
	now := e.now()

	if prev != nil && prev.Fingerprint() == built.Fingerprint() {
		e.gen.refreshedAt = now
		return prev, nil
	}

	e.gen = generation{
		vocab:       built,
		number:      e.gen.number + 1,
		refreshedAt: now,
	}

	event := e.logger.Info().
		Uint64("generation", e.gen.number).
		Int("dimensions", built.Len()).
		Str("fingerprint", built.Fingerprint())

	if prev != nil {
		e.vocabularyChanges.Add(1)
		features, prefs, results := e.invalidateAll()
		event = event.
			Str("previous_fingerprint", prev.Fingerprint()).
			Int64("previous_misses", prev.Misses()).
			Int("features_dropped", features).
			Int("preferences_dropped", prefs).
			Int("results_dropped", results)
		event.Msg("vocabulary changed, vector caches cleared")
		return built, nil
	}

	event.Msg("vocabulary built")
	return built, nil
}

// featureVector returns the memoized vector for listing, vectorizing it on a miss.
func (e *Engine) featureVector(vocab *Vocabulary, listing *models.Listing) Vector {
	if vec, ok := e.cachedFeature(listing.ID, vocab.Fingerprint()); ok {
		return vec
	}

	vec, unknown := Vectorize(vocab, listing)
	if len(unknown) > 0 {
		e.recordUnknown(listing.ID, unknown)
	}

	e.features.Set(listing.ID, featureEntry{vector: vec, fingerprint: vocab.Fingerprint()})
	return vec
}

func (e *Engine) cachedFeature(listingID, fingerprint string) (Vector, bool) {
	entry, ok := e.features.Get(listingID)
	if !ok || entry.fingerprint != fingerprint {
		return nil, false
	}
	return entry.vector, true
}

// recordUnknown counts names missing from the vocabulary by kind.
func (e *Engine) recordUnknown(listingID string, names []string) {
	e.unknownMu.Lock()
	for _, name := range names {
		e.unknownByKind[FeatureKind(name)]++
	}
	e.unknownMu.Unlock()

	e.logger.Debug().
		Str("listing_id", listingID).
		Strs("features", names).
		Msg("features not in vocabulary, skipped")
}

// peerVectors returns the preference vectors of every other user built under
// fingerprint: the cached ones, plus the persistent index when configured.
func (e *Engine) peerVectors(ctx context.Context, userID, fingerprint string) []Vector {
	seen := map[string]struct{}{userID: {}}
	var peers []Vector

	e.preferences.Range(func(id string, p *Preferences) bool {
		if _, dup := seen[id]; dup || p.Fingerprint != fingerprint {
			return true
		}
		seen[id] = struct{}{}
		peers = append(peers, p.Vector)
		return true
	})

	if e.peers == nil {
		return peers
	}

	err := e.peers.ForEachPeer(ctx, fingerprint, func(id string, vec []float64) bool {
		if _, dup := seen[id]; dup {
			return true
		}
		seen[id] = struct{}{}
		peers = append(peers, vec)
		return true
	})
	if err != nil {
		e.logger.Warn().Err(err).Msg("peer index scan failed, using cached peers only")
	}

	return peers
}

// ClearCache drops every cached vector and result and ends the current
// generation, so the next request rebuilds the vocabulary.
func (e *Engine) ClearCache() {
	e.genMu.Lock()
	e.gen.vocab = nil
	e.gen.refreshedAt = time.Time{}
	e.genMu.Unlock()

	features, prefs, results := e.invalidateAll()

	e.logger.Info().
		Int("features_dropped", features).
		Int("preferences_dropped", prefs).
		Int("results_dropped", results).
		Msg("recommendation cache cleared")
}

// PurgeExpired removes expired entries from every cache and returns the total removed.
func (e *Engine) PurgeExpired() int {
	return e.features.PurgeExpired() + e.preferences.PurgeExpired() + e.results.PurgeExpired()
}

func resultKey(userID string, limit int) string {
	return resultKeyPrefix(userID) + strconv.Itoa(limit)
}

func resultKeyPrefix(userID string) string {
	return "rec:" + userID + ":"
}

func (e *Engine) cachedResult(userID string, limit int, fingerprint string) ([]Recommendation, bool) {
	if !e.config.Cache.ResultCacheEnabled {
		return nil, false
	}
	entry, ok := e.results.Get(resultKey(userID, limit))
	if !ok || entry.fingerprint != fingerprint {
		return nil, false
	}
	out := make([]Recommendation, len(entry.recommendations))
	copy(out, entry.recommendations)
	return out, true
}

func (e *Engine) storeResult(userID string, token prefToken, limit int, fingerprint string, recs []Recommendation) {
	if !e.config.Cache.ResultCacheEnabled {
		return
	}
	stored := make([]Recommendation, len(recs))
	copy(stored, recs)
	e.commitUser(userID, token, func() {
		e.results.Set(resultKey(userID, limit), resultEntry{recommendations: stored, fingerprint: fingerprint})
	})
}

// tokenFor returns the user's current token. Take it before reading the like
// history and pass it to commitUser.
func (e *Engine) tokenFor(userID string) prefToken {
	e.prefMu.Lock()
	defer e.prefMu.Unlock()
	return prefToken{epoch: e.prefEpoch, version: e.prefVersions[userID]}
}

// commitUser runs write if no invalidation of userID happened since token was
// taken, and reports whether it ran.
func (e *Engine) commitUser(userID string, token prefToken, write func()) bool {
	e.prefMu.Lock()
	defer e.prefMu.Unlock()
	if token.epoch != e.prefEpoch || token.version != e.prefVersions[userID] {
		return false
	}
	write()
	return true
}

// invalidateUser drops the user's cached preferences and results and makes
// every outstanding token for the user stale.
func (e *Engine) invalidateUser(userID string) {
	e.prefMu.Lock()
	defer e.prefMu.Unlock()
	e.prefVersions[userID]++
	e.preferences.Delete(userID)
	e.results.DeletePrefix(resultKeyPrefix(userID))
}

// invalidateAll clears every cache and makes every outstanding token stale.
func (e *Engine) invalidateAll() (features, prefs, results int) {
	e.prefMu.Lock()
	e.prefEpoch++
	clear(e.prefVersions)
	e.prefMu.Unlock()

	return e.features.Clear(), e.preferences.Clear(), e.results.Clear()
}

// Stats returns a snapshot of engine state.
func (e *Engine) Stats() Stats {
	e.genMu.Lock()
	gen := e.gen
	e.genMu.Unlock()

	e.unknownMu.Lock()
	unknown := make(map[string]int64, len(e.unknownByKind))
	for kind, n := range e.unknownByKind {
		unknown[kind] = n
	}
	e.unknownMu.Unlock()

	stats := Stats{
		Generation:        gen.number,
		RefreshedAt:       gen.refreshedAt,
		Requests:          e.requestCount.Load(),
		ColdStarts:        e.coldStarts.Load(),
		Errors:            e.errorCount.Load(),
		VocabularyChanges: e.vocabularyChanges.Load(),
		UnknownFeatures:   unknown,
		FeatureCache:      cacheStats(e.features),
		PreferenceCache:   cacheStats(e.preferences),
		ResultCache:       cacheStats(e.results),
	}
	if gen.vocab != nil {
		stats.VocabularySize = gen.vocab.Len()
		stats.Fingerprint = gen.vocab.Fingerprint()
		stats.VocabularyMisses = gen.vocab.Misses()
	}
	return stats
}

func cacheStats[V any](c *cache.Cache[V]) CacheStats {
	s := c.GetStats()
	return CacheStats{
		Entries:   int64(c.Len()),
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
		HitRate:   c.HitRate(),
	}
}
