// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/roomies/internal/auth"
	"github.com/tomtom215/roomies/internal/database"
	"github.com/tomtom215/roomies/internal/likes"
	"github.com/tomtom215/roomies/internal/logging"
	"github.com/tomtom215/roomies/internal/models"
	"github.com/tomtom215/roomies/internal/validation"
)

// Error codes carried in the error envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeOwnListing   = "OWN_LISTING"
	CodeRateLimited  = "RATE_LIMITED"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInternal     = "INTERNAL_ERROR"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondMessage acknowledges an action.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, &models.MessageResponse{Success: true, Message: message})
}

// respondError sends an error response. err is logged, never sent.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		logger := logging.Ctx(r.Context())
		event := logger.Warn()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("code", code).
			Int("status", status).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.ErrorResponse{
		Success: false,
		Message: message,
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondValidationError sends 400 VALIDATION_ERROR.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
}

// respondServiceError maps a service error to a status and code. Unknown
// errors become 500 with fallback as the client-facing message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Listing not found", nil, nil)
	case errors.Is(err, database.ErrDuplicate):
		respondError(w, r, http.StatusConflict, CodeConflict, "Listing already liked", nil, nil)
	case errors.Is(err, likes.ErrOwnListing):
		respondError(w, r, http.StatusBadRequest, CodeOwnListing, "Cannot like your own listing", nil, nil)
	case database.IsUnavailable(err):
		respondError(w, r, http.StatusServiceUnavailable, CodeUnavailable, "Storage temporarily unavailable", nil, err)
	default:
		respondError(w, r, http.StatusInternalServerError, CodeInternal, fallback, nil, err)
	}
}

// requireUser returns the authenticated user id or writes 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil, nil)
		return "", false
	}
	return userID, true
}
