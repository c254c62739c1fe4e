// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

// Package peerindex persists user preference vectors in BadgerDB so the
// collaborative score can draw on users who are not in the in-memory
// preference cache.
//
// Each entry is tagged with the fingerprint of the vocabulary its vector was
// built under. Scans only yield entries whose fingerprint matches; Prune
// removes the rest.
package peerindex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/roomies/internal/logging"
)

const peerKeyPrefix = "peer:"

// Config selects where the index lives.
type Config struct {
	Path     string
	InMemory bool
}

// entry is the stored value for one user.
type entry struct {
	UserID      string    `json:"user_id"`
	Fingerprint string    `json:"fingerprint"`
	Vector      []float64 `json:"vector"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store implements recommend.PeerIndex on BadgerDB.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens (or creates) the index.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("peer index path is required")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open peer index: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Peer index opened")

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying BadgerDB.
func (s *Store) Close() error {
	return s.db.Close()
}

func peerKey(userID string) []byte {
	return []byte(peerKeyPrefix + userID)
}

// SavePreferences stores userID's vector, replacing any previous entry.
func (s *Store) SavePreferences(ctx context.Context, userID, fingerprint string, vec []float64) error {
	if userID == "" {
		return errors.New("peer index: user id is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entry{
		UserID:      userID,
		Fingerprint: fingerprint,
		Vector:      vec,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal peer entry: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(peerKey(userID), data); err != nil {
			return fmt.Errorf("set peer entry: %w", err)
		}
		return nil
	})
}

// DeletePreferences removes userID's entry. Deleting a missing entry is not an error.
func (s *Store) DeletePreferences(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(peerKey(userID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete peer entry: %w", err)
		}
		return nil
	})
}

// ForEachPeer calls fn for every entry built under fingerprint, in key
// order, until fn returns false. Undecodable entries are skipped.
func (s *Store) ForEachPeer(ctx context.Context, fingerprint string, fn func(userID string, vec []float64) bool) error {
	return s.scan(ctx, func(e *entry) bool {
		if e.Fingerprint != fingerprint {
			return true
		}
		return fn(e.UserID, e.Vector)
	})
}

// scan decodes every entry in key order until visit returns false.
func (s *Store) scan(ctx context.Context, visit func(e *entry) bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(peerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var e entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				logging.Debug().Err(err).Str("key", string(it.Item().Key())).Msg("skipping undecodable peer entry")
				continue
			}
			if !visit(&e) {
				return nil
			}
		}
		return nil
	})
}

// Prune deletes every entry not built under fingerprint and returns how many
// were removed.
func (s *Store) Prune(ctx context.Context, fingerprint string) (int, error) {
	var stale []string
	err := s.scan(ctx, func(e *entry) bool {
		if e.Fingerprint != fingerprint {
			stale = append(stale, e.UserID)
		}
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("scan peer entries: %w", err)
	}

	removed := 0
	for _, userID := range stale {
		if err := s.DeletePreferences(ctx, userID); err != nil {
			return removed, err
		}
		removed++
	}

	if removed > 0 {
		logging.Info().Int("removed", removed).Str("fingerprint", fingerprint).Msg("Peer index pruned")
	}
	return removed, nil
}

// Count returns the number of stored entries across all fingerprints.
func (s *Store) Count(ctx context.Context) (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(peerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	})

	return count, err
}
