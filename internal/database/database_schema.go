// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
database_schema.go - Database Schema Management

Tables:
  - listings: one row per room or entire property, address inlined
  - room_amenities, property_amenities, house_rules, cities: reference
    tables whose names become dynamic recommendation dimensions
  - listing_room_amenities, listing_property_amenities, listing_house_rules:
    listing to reference-name relations
  - likes: (user_id, listing_id) pairs with the time the like was made

There is no migration framework. Every statement is idempotent and runs on
each start. The SQL is the common subset accepted by DuckDB and SQLite.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// refTable names a reference table and its listing relation table.
type refTable struct {
	name     string
	relation string
}

var (
	roomAmenities     = refTable{name: "room_amenities", relation: "listing_room_amenities"}
	propertyAmenities = refTable{name: "property_amenities", relation: "listing_property_amenities"}
	houseRules        = refTable{name: "house_rules", relation: "listing_house_rules"}
	cities            = refTable{name: "cities"}
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the catalog tables
func (db *DB) createTables(ctx context.Context) error {
	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			listing_type TEXT NOT NULL,
			property_type TEXT NOT NULL,
			size_m2 DOUBLE NOT NULL DEFAULT 0,
			rent DOUBLE NOT NULL DEFAULT 0,
			bedrooms_single INTEGER NOT NULL DEFAULT 0,
			bedrooms_double INTEGER NOT NULL DEFAULT 0,
			flatmates_female INTEGER NOT NULL DEFAULT 0,
			flatmates_male INTEGER NOT NULL DEFAULT 0,
			room_size_m2 DOUBLE NOT NULL DEFAULT 0,
			has_bed BOOLEAN NOT NULL DEFAULT false,
			no_deposit BOOLEAN NOT NULL DEFAULT false,
			open_ended BOOLEAN NOT NULL DEFAULT false,
			bed_type TEXT NOT NULL DEFAULT '',
			street TEXT,
			postal_code TEXT,
			city TEXT,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS likes (
			user_id TEXT NOT NULL,
			listing_id TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, listing_id)
		)`,
	}

	for _, ref := range []refTable{roomAmenities, propertyAmenities, houseRules, cities} {
		queries = append(queries, fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY)`, ref.name))
		if ref.relation != "" {
			queries = append(queries, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				listing_id TEXT NOT NULL,
				name TEXT NOT NULL,
				PRIMARY KEY (listing_id, name)
			)`, ref.relation))
		}
	}

	return queries
}

// createIndexes creates database indexes for query optimization
func (db *DB) createIndexes(ctx context.Context) error {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_listings_owner ON listings(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_user_created ON likes(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_listing ON likes(listing_id)`,
	}
	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}
