// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

// Package likes records and removes likes and keeps the liking user's
// recommendation preferences in step.
//
// The preference hook is best-effort: once the like row is written or
// deleted, a failing recomputation is logged and counted but never turns
// the request into an error.
package likes

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/roomies/internal/database"
	"github.com/tomtom215/roomies/internal/metrics"
	"github.com/tomtom215/roomies/internal/models"
)

var (
	// ErrOwnListing is returned when a user tries to like a listing they own.
	ErrOwnListing = errors.New("likes: cannot like your own listing")

	// ErrEmptyUserID is returned when no user id is supplied.
	ErrEmptyUserID = errors.New("likes: user id is required")
)

// Store is the persistence the service needs.
type Store interface {
	ListingOwner(ctx context.Context, listingID string) (string, error)
	CreateLike(ctx context.Context, userID, listingID string) (*models.Like, error)
	DeleteLike(ctx context.Context, userID, listingID string) error
}

// PreferenceUpdater recomputes a user's preference vector.
type PreferenceUpdater interface {
	UpdateUserPreferences(ctx context.Context, userID string) error
}

// Service implements like and unlike.
type Service struct {
	store  Store
	prefs  PreferenceUpdater
	logger zerolog.Logger
}

// NewService creates a like service. prefs may be nil, in which case no
// preference recomputation happens.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(store Store, prefs PreferenceUpdater, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		prefs:  prefs,
		logger: logger.With().Str("component", "likes").Logger(),
	}
}

// Like records that userID likes listingID.
//
// It returns database.ErrNotFound when the listing does not exist,
// ErrOwnListing when userID owns it and database.ErrDuplicate when the like
// already exists.
func (s *Service) Like(ctx context.Context, userID, listingID string) (*models.Like, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	owner, err := s.store.ListingOwner(ctx, listingID)
	if err != nil {
		metrics.RecordLike("like", resultLabel(err))
		return nil, fmt.Errorf("look up listing: %w", err)
	}
	if owner == userID {
		metrics.RecordLike("like", "own_listing")
		return nil, ErrOwnListing
	}

	like, err := s.store.CreateLike(ctx, userID, listingID)
	if err != nil {
		metrics.RecordLike("like", resultLabel(err))
		return nil, fmt.Errorf("create like: %w", err)
	}
	metrics.RecordLike("like", "created")

	s.refreshPreferences(ctx, "like", userID, listingID)
	return like, nil
}

// Unlike removes userID's like of listingID. It returns database.ErrNotFound
// when there was no such like.
func (s *Service) Unlike(ctx context.Context, userID, listingID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}

	if err := s.store.DeleteLike(ctx, userID, listingID); err != nil {
		metrics.RecordLike("unlike", resultLabel(err))
		return fmt.Errorf("delete like: %w", err)
	}
	metrics.RecordLike("unlike", "deleted")

	s.refreshPreferences(ctx, "unlike", userID, listingID)
	return nil
}

// refreshPreferences runs the preference hook and swallows its error.
func (s *Service) refreshPreferences(ctx context.Context, trigger, userID, listingID string) {
	if s.prefs == nil {
		return
	}

	err := s.prefs.UpdateUserPreferences(ctx, userID)
	metrics.RecordPreferenceUpdate(trigger, err)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("trigger", trigger).
			Str("user_id", userID).
			Str("listing_id", listingID).
			Msg("preference update failed, like bookkeeping kept")
	}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return "not_found"
	case errors.Is(err, database.ErrDuplicate):
		return "duplicate"
	default:
		return "error"
	}
}
