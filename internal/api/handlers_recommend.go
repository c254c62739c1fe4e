// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/roomies/internal/metrics"
	"github.com/tomtom215/roomies/internal/models"
	"github.com/tomtom215/roomies/internal/recommend"
	"github.com/tomtom215/roomies/internal/validation"
)

// Recommendations handles GET /api/v1/recommendations?limit=N.
//
// limit is optional. When given it must be an integer in [1, 100].
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, verr := validation.ParseRecommendationsRequest(r.URL.Query())
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	start := time.Now()
	recs, err := h.recommender.GetRecommendations(r.Context(), userID, req.LimitOrZero())
	metrics.RecordRecommendation(time.Since(start), len(recs), err)
	if err != nil {
		respondServiceError(w, r, err, "Failed to get recommendations")
		return
	}
	if recs == nil {
		recs = []recommend.Recommendation{}
	}

	respondJSON(w, http.StatusOK, &models.RecommendationsResponse{
		Success:         true,
		Recommendations: recs,
		Count:           len(recs),
	})
}

// UpdatePreferences handles POST /api/v1/recommendations/update-preferences.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	err := h.recommender.UpdateUserPreferences(r.Context(), userID)
	metrics.RecordPreferenceUpdate("api", err)
	if err != nil {
		respondServiceError(w, r, err, "Failed to update preferences")
		return
	}

	respondMessage(w, http.StatusOK, "User preferences updated")
}

// ClearCache handles POST /api/v1/recommendations/clear-cache. The cache is
// shared by every user.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	h.recommender.ClearCache()
	respondMessage(w, http.StatusOK, "Recommendation cache cleared")
}
