// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package models

// APIError carries a machine-readable error code alongside the message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MessageResponse is returned by endpoints that only acknowledge an action.
//
//	{"success": true, "message": "User preferences updated"}
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
//
//	{
//	  "success": false,
//	  "message": "Failed to get recommendations",
//	  "error": {"code": "INTERNAL_ERROR", "message": "Failed to get recommendations"}
//	}
type ErrorResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   *APIError `json:"error,omitempty"`
}

// RecommendationsResponse wraps a ranked recommendation list.
// Recommendations is typed by the caller to avoid an import cycle with the engine.
type RecommendationsResponse struct {
	Success         bool        `json:"success"`
	Recommendations interface{} `json:"recommendations"`
	Count           int         `json:"count"`
}
