// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package auth identifies the user behind each API request.

Roomies does not sign users up or log them in. Tokens are issued by the
account service and verified here; the subject claim is the user id.

Key Components:

  - JWTManager: HS256 token validation, with optional issuer check
  - Middleware: http.Handler middleware that stores the user id in the
    request context, read back with UserIDFromContext

Authentication Modes (security.auth_mode / AUTH_MODE):

  - jwt (default): requires "Authorization: Bearer <token>"
  - none: trusts the X-User-ID header; rejected by config validation in
    production

Usage Example:

	authMW, err := auth.NewMiddleware(&cfg.Security)
	if err != nil {
	    return err
	}
	r.With(authMW.Authenticate).Get("/api/v1/recommendations", h.Recommendations)

Unauthenticated requests receive 401 with the standard error envelope and
code UNAUTHORIZED.
*/
package auth
