// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

// Package database provides the listing catalog and like store for Roomies.
//
// # Overview
//
// DB implements recommend.DataProvider over database/sql. Two drivers are
// supported and selected by database.driver:
//
//   - duckdb (github.com/duckdb/duckdb-go/v2): the production driver, CGO based
//   - sqlite (modernc.org/sqlite): pure Go, used in development and tests
//
// # Files
//
//   - database.go: lifecycle (open, schema bootstrap, ping, close)
//   - database_connection.go: DSNs and connection pool settings per driver
//   - database_schema.go: idempotent CREATE TABLE / CREATE INDEX statements
//   - catalog.go: reference names, listing reads and listing creation
//   - likes.go: like history, like / unlike writes, listing ownership
//   - breaker.go: BreakerStore, a sony/gobreaker wrapper over the provider
//
// # Conventions
//
// Every query runs under a per-query timeout (database.query_timeout) and
// records roomies_db_query_duration_seconds. Listing reads return slices
// ordered by id with non-nil relation slices. Missing rows surface as
// ErrNotFound and duplicate likes as ErrDuplicate; test with errors.Is.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	var provider recommend.DataProvider = db
//	if cfg.Breaker.Enabled {
//	    provider = database.NewBreakerStore(db, cfg.Breaker)
//	}
package database
