// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package config provides centralized configuration management for Roomies.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The result is validated before use.

# Configuration File

The file is looked up in CONFIG_PATH, then ./config.yaml, ./config.yml and
/etc/roomies/config.yaml:

	database:
	  driver: sqlite
	  path: ./roomies.db
	security:
	  auth_mode: none
	recommend:
	  min_likes: 3
	  cache_ttl: 5m
	  peer_index:
	    enabled: true
	    path: ./data/peers

# Environment Variables

Only mapped variables are read. The most common ones:

Database:
  - DATABASE_DRIVER: duckdb or sqlite (default: duckdb)
  - DATABASE_PATH / DUCKDB_PATH: database file (default: /data/roomies.duckdb)
  - DATABASE_QUERY_TIMEOUT: per-query timeout (default: 5s)

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT: per-request handler timeout (default: 10s)
  - ENVIRONMENT: development or production

Security:
  - AUTH_MODE: jwt or none (none trusts the X-User-ID header, development only)
  - JWT_SECRET: HS256 verification key, at least 32 characters
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated list

Recommendations:
  - RECOMMEND_MIN_LIKES, RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT
  - RECOMMEND_CACHE_TTL, RECOMMEND_RESULT_CACHE, RECOMMEND_PURGE_INTERVAL
  - RECOMMEND_PEER_INDEX_ENABLED, RECOMMEND_PEER_INDEX_PATH

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include caller file:line
*/
package config
