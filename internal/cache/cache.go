// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package cache

import (
	"strings"
	"sync"
	"time"
)

// Entry represents a cached item with expiration
type Entry[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// Cache provides a thread-safe in-memory cache with TTL support
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[V]
	ttl     time.Duration
	now     func() time.Time
	stats   Stats
}

// Stats tracks cache performance metrics
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates a cache whose entries expire after ttl.
//
// Expiration is lazy: Get treats an expired entry as a miss and removes it.
// Long-lived caches should also call PurgeExpired periodically so entries that
// are never read again do not accumulate.
//
// Example:
//
//	c := cache.New[[]float64](5 * time.Minute)
//	c.Set("listing-1", vec)
//	if v, ok := c.Get("listing-1"); ok {
//	    // Use cached vector
//	}
func New[V any](ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[V]{
		entries: make(map[string]Entry[V]),
		ttl:     ttl,
		now:     o.now,
		stats: Stats{
			LastCleanup: o.now(),
		},
	}
}

// TTL returns the default time-to-live for new entries.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value from the cache by key with automatic expiration checking.
//
// Returns the zero value and false if the key is absent or has expired. An
// expired entry is deleted and counted as both a miss and an eviction.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !exists {
		c.recordMiss()
		return zero, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, ok := c.entries[key]; ok && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
			c.updateTotalKeysLocked()
		}
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return zero, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value in the cache with the default TTL configured at cache creation.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value in the cache with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[V]{
		Data:      value,
		ExpiresAt: c.now().Add(ttl),
	}
	c.updateTotalKeysLocked()
}

// Delete removes a specific cache entry by key. It reports whether the key was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	c.updateTotalKeysLocked()
	c.mu.Unlock()

	if existed {
		c.recordEviction()
	}
	return existed
}

// DeletePrefix removes every entry whose key starts with prefix and returns
// the number of entries removed.
func (c *Cache[V]) DeletePrefix(prefix string) int {
	c.mu.Lock()
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	c.updateTotalKeysLocked()
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += int64(removed)
	c.stats.mu.Unlock()

	return removed
}

// Clear removes all entries from the cache and returns how many were dropped.
func (c *Cache[V]) Clear() int {
	c.mu.Lock()
	evictions := len(c.entries)
	c.entries = make(map[string]Entry[V])
	c.mu.Unlock()

	c.stats.mu.Lock()
	c.stats.Evictions += int64(evictions)
	c.stats.TotalKeys = 0
	c.stats.mu.Unlock()

	return evictions
}

// Len returns the number of stored entries, including ones that have expired
// but not yet been purged.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Range calls fn for every unexpired entry until fn returns false.
//
// Iteration runs over a snapshot, so fn may safely call other cache methods.
// Range does not touch hit or miss counters.
func (c *Cache[V]) Range(fn func(key string, value V) bool) {
	now := c.now()

	c.mu.RLock()
	snapshot := make([]struct {
		key   string
		value V
	}, 0, len(c.entries))
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			continue
		}
		snapshot = append(snapshot, struct {
			key   string
			value V
		}{key, entry.Data})
	}
	c.mu.RUnlock()

	for _, kv := range snapshot {
		if !fn(kv.key, kv.value) {
			return
		}
	}
}

// PurgeExpired removes all expired entries and returns the number removed.
func (c *Cache[V]) PurgeExpired() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	evictions := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}

	c.stats.mu.Lock()
	c.stats.Evictions += int64(evictions)
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
	c.stats.mu.Unlock()

	return evictions
}

// GetStats returns a snapshot of current cache performance statistics.
func (c *Cache[V]) GetStats() Stats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()

	return Stats{
		Hits:        c.stats.Hits,
		Misses:      c.stats.Misses,
		Evictions:   c.stats.Evictions,
		TotalKeys:   c.stats.TotalKeys,
		LastCleanup: c.stats.LastCleanup,
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// updateTotalKeysLocked must be called with c.mu held.
func (c *Cache[V]) updateTotalKeysLocked() {
	c.stats.mu.Lock()
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.mu.Unlock()
}

func (c *Cache[V]) recordHit() {
	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
}

func (c *Cache[V]) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}

func (c *Cache[V]) recordEviction() {
	c.stats.mu.Lock()
	c.stats.Evictions++
	c.stats.mu.Unlock()
}
