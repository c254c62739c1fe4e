// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package validation

import (
	"net/url"
	"strconv"
	"strings"
)

// MaxRecommendationLimit is the largest limit accepted over HTTP.
const MaxRecommendationLimit = 100

// RecommendationsRequest holds the query parameters of
// GET /api/v1/recommendations. A nil Limit means the engine default.
type RecommendationsRequest struct {
	Limit *int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// LimitOrZero returns the requested limit, or 0 when none was given.
func (r *RecommendationsRequest) LimitOrZero() int {
	if r.Limit == nil {
		return 0
	}
	return *r.Limit
}

// ListingRequest identifies the listing in /api/v1/listings/{id}/like.
type ListingRequest struct {
	ListingID string `query:"id" validate:"required,entityid,max=128"`
}

// ParseRecommendationsRequest reads and validates the recommendation query.
// A limit that is not an integer fails with tag "numeric".
func ParseRecommendationsRequest(q url.Values) (*RecommendationsRequest, *RequestValidationError) {
	req := &RecommendationsRequest{}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &RequestValidationError{errors: []ValidationError{{
				field:   "limit",
				tag:     "numeric",
				value:   raw,
				message: "limit must be an integer",
			}}}
		}
		req.Limit = &limit
	}

	if verr := ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}

// ParseListingRequest validates a listing id taken from the URL path.
func ParseListingRequest(id string) (*ListingRequest, *RequestValidationError) {
	req := &ListingRequest{ListingID: id}
	if verr := ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}
