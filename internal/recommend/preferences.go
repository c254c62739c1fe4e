// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package recommend

import (
	"context"
	"fmt"
)

// UserPreferences returns the user's preference vector, computing and caching
// it on a miss.
func (e *Engine) UserPreferences(ctx context.Context, userID string) (*Preferences, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	vocab, err := e.Vocabulary(ctx)
	if err != nil {
		return nil, err
	}
	return e.userPreferences(ctx, vocab, userID, true)
}

// UpdateUserPreferences evicts the user's cached preferences and cached
// results, then recomputes and re-caches the preferences from the current
// like history. Call it after every like or unlike.
//
// Computations for the user that were already in flight keep their result to
// themselves; only what is read after the eviction is cached.
func (e *Engine) UpdateUserPreferences(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	e.invalidateUser(userID)

	vocab, err := e.Vocabulary(ctx)
	if err != nil {
		return err
	}

	prefs, err := e.userPreferences(ctx, vocab, userID, false)
	if err != nil {
		return fmt.Errorf("recompute preferences: %w", err)
	}

	e.logger.Debug().
		Str("user_id", userID).
		Int("likes", prefs.LikeCount).
		Int("resolved", prefs.Resolved).
		Msg("user preferences updated")

	return nil
}

func (e *Engine) userPreferences(ctx context.Context, vocab *Vocabulary, userID string, useCache bool) (*Preferences, error) {
	if useCache {
		if p, ok := e.preferences.Get(userID); ok && p.Fingerprint == vocab.Fingerprint() {
			return p, nil
		}
	}

	token := e.tokenFor(userID)
	prefs, err := e.computePreferences(ctx, vocab, userID)
	if err != nil {
		return nil, err
	}

	committed := e.commitUser(userID, token, func() {
		e.preferences.Set(userID, prefs)
		e.persistPeer(ctx, prefs)
	})
	if !committed {
		e.logger.Debug().Str("user_id", userID).Msg("preferences changed during computation, result not cached")
	}

	return prefs, nil
}

// computePreferences averages the feature vectors of every liked listing that
// still resolves. With nothing resolved the result is the zero vector.
func (e *Engine) computePreferences(ctx context.Context, vocab *Vocabulary, userID string) (*Preferences, error) {
	likedIDs, err := e.provider.LikedListingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get like history: %w", err)
	}

	sum := make(Vector, vocab.Len())
	resolved := 0

	missing := make([]string, 0, len(likedIDs))
	for _, id := range likedIDs {
		if vec, ok := e.cachedFeature(id, vocab.Fingerprint()); ok {
			addInto(sum, vec)
			resolved++
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		listings, err := e.provider.ListingsByIDs(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("get liked listings: %w", err)
		}
		for i := range listings {
			addInto(sum, e.featureVector(vocab, &listings[i]))
			resolved++
		}
		if skipped := len(missing) - len(listings); skipped > 0 {
			e.logger.Debug().
				Str("user_id", userID).
				Int("skipped", skipped).
				Msg("liked listings no longer resolve, skipped")
		}
	}

	if resolved > 0 {
		divideInto(sum, resolved)
	}

	return &Preferences{
		UserID:      userID,
		Vector:      sum,
		LikeCount:   len(likedIDs),
		Resolved:    resolved,
		Fingerprint: vocab.Fingerprint(),
		ComputedAt:  e.now(),
	}, nil
}

// persistPeer writes prefs through to the peer index. Failures are logged only.
func (e *Engine) persistPeer(ctx context.Context, prefs *Preferences) {
	if e.peers == nil {
		return
	}

	var err error
	if prefs.Resolved > 0 {
		err = e.peers.SavePreferences(ctx, prefs.UserID, prefs.Fingerprint, prefs.Vector)
	} else {
		err = e.peers.DeletePreferences(ctx, prefs.UserID)
	}
	if err != nil {
		e.logger.Warn().Err(err).Str("user_id", prefs.UserID).Msg("peer index write failed")
	}
}
