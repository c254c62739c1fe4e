// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/roomies/internal/config"
	"github.com/tomtom215/roomies/internal/logging"
	"github.com/tomtom215/roomies/internal/metrics"
	"github.com/tomtom215/roomies/internal/models"
	"github.com/tomtom215/roomies/internal/recommend"
)

// BreakerName is the circuit breaker label used in logs and metrics.
const BreakerName = "catalog"

// BreakerStore wraps the recommendation data provider with a circuit breaker.
// While storage keeps failing, calls fail fast with an error wrapping
// gobreaker.ErrOpenState instead of waiting on the database. There are no
// retries.
type BreakerStore struct {
	next recommend.DataProvider
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// NewBreakerStore wraps next. Zero-valued settings fall back to gobreaker's
// defaults, except FailureThreshold which defaults to 5.
func NewBreakerStore(next recommend.DataProvider, cfg config.BreakerConfig) *BreakerStore {
	name := BreakerName
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= threshold
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// Missing rows and callers that went away say nothing about storage health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerStore{next: next, cb: cb, name: name}
}

// State returns the breaker state as closed, half-open or open.
func (b *BreakerStore) State() string {
	return stateToString(b.cb.State())
}

// execute runs fn through the breaker and records the outcome.
func (b *BreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%s storage unavailable: %w", b.name, err)
		}

		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func (b *BreakerStore) callStrings(fn func() ([]string, error)) ([]string, error) {
	return castResult[[]string](b.execute(func() (interface{}, error) { return fn() }))
}

func (b *BreakerStore) callListings(fn func() ([]models.Listing, error)) ([]models.Listing, error) {
	return castResult[[]models.Listing](b.execute(func() (interface{}, error) { return fn() }))
}

// RoomAmenityNames implements recommend.DataProvider.
func (b *BreakerStore) RoomAmenityNames(ctx context.Context) ([]string, error) {
	return b.callStrings(func() ([]string, error) { return b.next.RoomAmenityNames(ctx) })
}

// PropertyAmenityNames implements recommend.DataProvider.
func (b *BreakerStore) PropertyAmenityNames(ctx context.Context) ([]string, error) {
	return b.callStrings(func() ([]string, error) { return b.next.PropertyAmenityNames(ctx) })
}

// HouseRuleNames implements recommend.DataProvider.
func (b *BreakerStore) HouseRuleNames(ctx context.Context) ([]string, error) {
	return b.callStrings(func() ([]string, error) { return b.next.HouseRuleNames(ctx) })
}

// CityNames implements recommend.DataProvider.
func (b *BreakerStore) CityNames(ctx context.Context) ([]string, error) {
	return b.callStrings(func() ([]string, error) { return b.next.CityNames(ctx) })
}

// LikedListingIDs implements recommend.DataProvider.
func (b *BreakerStore) LikedListingIDs(ctx context.Context, userID string) ([]string, error) {
	return b.callStrings(func() ([]string, error) { return b.next.LikedListingIDs(ctx, userID) })
}

// ListingsByIDs implements recommend.DataProvider.
func (b *BreakerStore) ListingsByIDs(ctx context.Context, ids []string) ([]models.Listing, error) {
	return b.callListings(func() ([]models.Listing, error) { return b.next.ListingsByIDs(ctx, ids) })
}

// CandidateListings implements recommend.DataProvider.
func (b *BreakerStore) CandidateListings(ctx context.Context, excludeOwnerID string) ([]models.Listing, error) {
	return b.callListings(func() ([]models.Listing, error) { return b.next.CandidateListings(ctx, excludeOwnerID) })
}

// stateToFloat converts circuit breaker state to float for Prometheus metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// IsUnavailable reports whether err came from an open or saturated breaker.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
