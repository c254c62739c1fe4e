// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package api serves the Roomies HTTP API on a chi router.

Routes:

	GET    /health                                   liveness
	GET    /health/ready                             database ping and breaker state
	GET    /metrics                                  Prometheus exposition
	GET    /api/v1/recommendations?limit=N           ranked listings for the caller
	POST   /api/v1/recommendations/update-preferences recompute the caller's preferences
	POST   /api/v1/recommendations/clear-cache       drop every cached vector
	POST   /api/v1/listings/{id}/like                like a listing
	DELETE /api/v1/listings/{id}/like                remove a like

Everything under /api/v1 passes the per-IP rate limiter, the request timeout
and auth.Middleware, in that order.

Response Format:

Success bodies carry "success": true. Errors use models.ErrorResponse:

	{"success": false, "message": "...", "error": {"code": "VALIDATION_ERROR", "message": "..."}}

Error Mapping:

  - validation failure: 400 VALIDATION_ERROR
  - liking your own listing: 400 OWN_LISTING
  - unknown listing or like: 404 NOT_FOUND
  - duplicate like: 409 CONFLICT
  - rate limit: 429 RATE_LIMITED
  - storage circuit breaker open: 503 SERVICE_UNAVAILABLE
  - anything else: 500 INTERNAL_ERROR with a generic message; the cause is
    logged with the request id

Handlers depend on the Recommender, LikeService and Pinger interfaces, so
tests drive them with fakes through the real router.
*/
package api
