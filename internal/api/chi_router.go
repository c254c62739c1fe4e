// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/roomies/internal/middleware"
)

// Authenticator identifies the user behind a request.
type Authenticator interface {
	Authenticate(next http.Handler) http.Handler
}

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler        *Handler
	auth           Authenticator
	chiMiddleware  *ChiMiddleware
	requestTimeout time.Duration
}

// NewRouter creates a router. A zero requestTimeout disables the
// per-request deadline.
func NewRouter(handler *Handler, authenticator Authenticator, mw *ChiMiddleware, requestTimeout time.Duration) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:        handler,
		auth:           authenticator,
		chiMiddleware:  mw,
		requestTimeout: requestTimeout,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog(middleware.DefaultSlowRequestThreshold))
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil, nil)
	})

	// ========================
	// Health and Metrics
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom("health", RateLimitHealth))
		r.Get("/health", router.handler.Health)
		r.Get("/health/ready", router.handler.HealthReady)
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	})

	// ========================
	// Authenticated API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		if router.requestTimeout > 0 {
			r.Use(chimiddleware.Timeout(router.requestTimeout))
		}
		r.Use(router.auth.Authenticate)

		r.Get("/recommendations", router.handler.Recommendations)
		r.Post("/recommendations/update-preferences", router.handler.UpdatePreferences)
		r.Post("/recommendations/clear-cache", router.handler.ClearCache)

		r.Post("/listings/{id}/like", router.handler.LikeListing)
		r.Delete("/listings/{id}/like", router.handler.UnlikeListing)
	})

	return r
}
