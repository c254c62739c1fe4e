// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/roomies/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which AccessLog warns.
const DefaultSlowRequestThreshold = time.Second

// AccessLog logs one line per request through the request-scoped logger.
// Requests slower than slow are logged at warn level, the rest at debug.
// A non-positive slow uses DefaultSlowRequestThreshold.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			if duration > slow {
				event = logger.Warn().Dur("threshold", slow)
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", rec.statusCode).
				Dur("duration", duration).
				Msg("HTTP request")
		})
	}
}
