// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	var capturedID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("response X-Request-ID %q is not a UUID: %v", responseID, err)
	}
	if capturedID != responseID {
		t.Errorf("context id %q != header id %q", capturedID, responseID)
	}
}

func TestRequestID_UpstreamHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{"proxy id reused", "edge-7f3a", true},
		{"empty generates", "", false},
		{"whitespace rejected", "has space", false},
		{"control char rejected", "id\nforged", false},
		{"too long rejected", strings.Repeat("a", maxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var capturedID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedID = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := capturedID == tt.incoming; got != tt.reused {
				t.Errorf("reused = %v, want %v (id %q)", got, tt.reused, capturedID)
			}
			if capturedID == "" || rec.Header().Get(RequestIDHeader) != capturedID {
				t.Errorf("header %q, context %q", rec.Header().Get(RequestIDHeader), capturedID)
			}
		})
	}
}
