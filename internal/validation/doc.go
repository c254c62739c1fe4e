// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is shared by every handler. Field names in
// messages come from the query or json tag, so a bad ?limit= is reported as
// "limit", not "Limit".
//
// # Request Types
//
//   - RecommendationsRequest: optional limit, 1..100
//   - ListingRequest: listing id from the URL path
//
// # Usage
//
//	req, verr := validation.ParseRecommendationsRequest(r.URL.Query())
//	if verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Custom Tags
//
//   - entityid: non-empty printable ASCII without whitespace
//
// Errors convert to the VALIDATION_ERROR envelope through ToAPIError.
package validation
