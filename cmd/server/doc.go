// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package main is the entry point for the Roomies recommendation server.

Roomies ranks room and property listings for a user from their like
history: content similarity against the features of liked listings blended
with a collaborative signal from users with similar taste.

# Application Architecture

Services run under a Suture v4 supervision tree:

	RootSupervisor ("roomies")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── cache-maintenance (expired entry purge, engine gauges)
	└── APISupervisor ("api-layer")
	    └── http-server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional config.yaml and
    environment variables
 2. Logging: zerolog, level and format from the logging section
 3. Storage: DuckDB (default) or SQLite catalog, optionally behind a
    gobreaker circuit breaker
 4. Peer index: optional BadgerDB store of user preference vectors
 5. Recommendation engine and like service
 6. HTTP: chi router with auth, rate limiting, CORS and Prometheus metrics

# Configuration

Common environment variables:

	DATABASE_DRIVER=sqlite DATABASE_PATH=/data/roomies.db
	AUTH_MODE=jwt JWT_SECRET=$(openssl rand -base64 32)
	RECOMMEND_CONTENT_WEIGHT=0.6 RECOMMEND_COLLABORATIVE_WEIGHT=0.4
	RECOMMEND_PEER_INDEX_ENABLED=true RECOMMEND_PEER_INDEX_PATH=/data/peers

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests within server.shutdown_timeout, then the peer index and
database are closed.

# Example Usage

Development without token verification:

	export AUTH_MODE=none DATABASE_DRIVER=sqlite DATABASE_PATH=./data/roomies.db
	./roomies
	curl -H 'X-User-ID: alice' localhost:8080/api/v1/recommendations?limit=5
*/
package main
