// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package api

import (
	"context"
	"time"

	"github.com/tomtom215/roomies/internal/models"
	"github.com/tomtom215/roomies/internal/recommend"
)

// Recommender is the part of the recommendation engine the API exposes.
type Recommender interface {
	GetRecommendations(ctx context.Context, userID string, limit int) ([]recommend.Recommendation, error)
	UpdateUserPreferences(ctx context.Context, userID string) error
	ClearCache()
}

// LikeService records and removes likes.
type LikeService interface {
	Like(ctx context.Context, userID, listingID string) (*models.Like, error)
	Unlike(ctx context.Context, userID, listingID string) error
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerReporter exposes the storage circuit breaker state.
type BreakerReporter interface {
	State() string
}

// Dependencies are the services behind the HTTP handlers. Breaker is optional.
type Dependencies struct {
	Recommender Recommender
	Likes       LikeService
	DB          Pinger
	Breaker     BreakerReporter
}

// Handler serves the Roomies HTTP API.
type Handler struct {
	recommender Recommender
	likes       LikeService
	db          Pinger
	breaker     BreakerReporter
	startTime   time.Time
}

// NewHandler creates the API handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		recommender: deps.Recommender,
		likes:       deps.Likes,
		db:          deps.DB,
		breaker:     deps.Breaker,
		startTime:   time.Now(),
	}
}
