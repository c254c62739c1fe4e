// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package middleware provides the infrastructure HTTP middleware shared by all
routes. Authentication lives in package auth.

Key Components:

  - RequestID: assigns or propagates X-Request-ID and stores it in the
    request context for logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - AccessLog: one structured log line per request, at warn level when the
    request exceeds the slow threshold

All middleware have the chi signature func(http.Handler) http.Handler.

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(cors.Handler(corsOptions))
	r.Use(httprate.Limit(...))

RequestID must run first so later middleware log with the id. The route
pattern label is read after the handler returns, when chi has filled in the
route context.
*/
package middleware
