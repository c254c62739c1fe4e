// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/roomies/internal/validation"
)

// LikeListing handles POST /api/v1/listings/{id}/like.
func (h *Handler) LikeListing(w http.ResponseWriter, r *http.Request) {
	userID, listingID, ok := h.likeTarget(w, r)
	if !ok {
		return
	}

	like, err := h.likes.Like(r.Context(), userID, listingID)
	if err != nil {
		respondServiceError(w, r, err, "Failed to like listing")
		return
	}

	respondJSON(w, http.StatusCreated, &likeResponse{
		Success: true,
		Message: "Listing liked",
		Like:    like,
	})
}

// UnlikeListing handles DELETE /api/v1/listings/{id}/like.
func (h *Handler) UnlikeListing(w http.ResponseWriter, r *http.Request) {
	userID, listingID, ok := h.likeTarget(w, r)
	if !ok {
		return
	}

	if err := h.likes.Unlike(r.Context(), userID, listingID); err != nil {
		respondServiceError(w, r, err, "Failed to unlike listing")
		return
	}

	respondMessage(w, http.StatusOK, "Listing unliked")
}

func (h *Handler) likeTarget(w http.ResponseWriter, r *http.Request) (userID, listingID string, ok bool) {
	userID, ok = requireUser(w, r)
	if !ok {
		return "", "", false
	}

	req, verr := validation.ParseListingRequest(chi.URLParam(r, "id"))
	if verr != nil {
		respondValidationError(w, r, verr)
		return "", "", false
	}
	return userID, req.ListingID, true
}
