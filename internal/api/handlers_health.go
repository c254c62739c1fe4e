// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/roomies/internal/models"
)

const readinessTimeout = 2 * time.Second

// healthResponse is the body of /health and /health/ready.
type healthResponse struct {
	Success  bool    `json:"success"`
	Status   string  `json:"status"`
	Uptime   float64 `json:"uptime_seconds"`
	Database string  `json:"database,omitempty"`
	Breaker  string  `json:"circuit_breaker,omitempty"`
}

// likeResponse is the body of a successful like.
type likeResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Like    *models.Like `json:"like"`
}

// Health handles GET /health. It reports liveness only.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &healthResponse{
		Success: true,
		Status:  "ok",
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready. It returns 503 when the database
// does not answer a ping or the storage circuit breaker is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := &healthResponse{
		Success:  true,
		Status:   "ready",
		Uptime:   time.Since(h.startTime).Seconds(),
		Database: "connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()
	if h.db == nil || h.db.Ping(ctx) != nil {
		resp.Database = "unreachable"
		resp.Success = false
	}

	if h.breaker != nil {
		resp.Breaker = h.breaker.State()
		if resp.Breaker == "open" {
			resp.Success = false
		}
	}

	status := http.StatusOK
	if !resp.Success {
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}
