// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/roomies/internal/config"
	"github.com/tomtom215/roomies/internal/logging"
	"github.com/tomtom215/roomies/internal/models"
)

// Authentication modes.
const (
	AuthModeJWT  = "jwt"
	AuthModeNone = "none"
)

// UserIDHeader identifies the caller when auth mode is none.
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDContextKey contextKey = "user_id"

// ContextWithUserID returns a context carrying the authenticated user id.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok && id != ""
}

// Middleware identifies the user behind each request.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
}

// NewMiddleware creates the authentication middleware for cfg.AuthMode.
func NewMiddleware(cfg *config.SecurityConfig) (*Middleware, error) {
	m := &Middleware{authMode: cfg.AuthMode}

	switch cfg.AuthMode {
	case AuthModeJWT, "":
		manager, err := NewJWTManager(cfg)
		if err != nil {
			return nil, err
		}
		m.jwtManager = manager
		m.authMode = AuthModeJWT
	case AuthModeNone:
		logging.Warn().Msg("Authentication disabled, trusting the " + UserIDHeader + " header")
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
	}

	return m, nil
}

// Authenticate rejects requests without a valid identity with 401 and
// otherwise stores the user id in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.identify(r)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Authentication failed")
			writeUnauthorized(w, err)
			return
		}

		ctx := ContextWithUserID(r.Context(), userID)
		ctx = logging.ContextWithUserID(ctx, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var (
	errMissingToken  = errors.New("missing bearer token")
	errInvalidHeader = errors.New("invalid authorization header")
	errInvalidToken  = errors.New("invalid token")
	errMissingUserID = errors.New("missing " + UserIDHeader + " header")
)

func (m *Middleware) identify(r *http.Request) (string, error) {
	if m.authMode == AuthModeNone {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			return "", errMissingUserID
		}
		return userID, nil
	}

	token, err := extractBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return "", err
	}

	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
		return "", errInvalidToken
	}
	return claims.UserID(), nil
}

// extractBearerToken extracts the JWT from an Authorization header value.
func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errInvalidHeader
	}

	return strings.TrimSpace(parts[1]), nil
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	msg := "Unauthorized: " + err.Error()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="roomies"`)
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck // response already committed
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Success: false,
		Message: msg,
		Error:   &models.APIError{Code: "UNAUTHORIZED", Message: msg},
	})
}
