// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package cache provides a thread-safe, generic in-memory cache with TTL support.

The recommendation engine keeps three of these: feature vectors keyed by
listing id, preference vectors keyed by user id, and (optionally) final
recommendation lists keyed by user and limit.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Time-to-live (TTL) expiration, checked lazily on Get
  - An injectable clock so expiry can be driven deterministically in tests
  - Hit, miss and eviction statistics for metrics export

There is no background goroutine. Expired entries are dropped on access or by
an explicit PurgeExpired call; the supervisor's maintenance service does the
latter on a ticker.

# Usage Example

	c := cache.New[[]float64](5*time.Minute, cache.WithClock(clock))

	c.Set("listing-1", vec)
	if v, ok := c.Get("listing-1"); ok {
	    // use v
	}

	// Invalidate every entry for one user
	c.DeletePrefix("rec:user-42:")

# Thread Safety

All methods are safe for concurrent use. Range iterates over a snapshot taken
under the read lock, so the callback may call back into the cache.
*/
package cache
