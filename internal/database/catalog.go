// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/roomies/internal/models"
)

const listingColumns = `id, owner_id, title, listing_type, property_type, size_m2, rent,
	bedrooms_single, bedrooms_double, flatmates_female, flatmates_male, room_size_m2,
	has_bed, no_deposit, open_ended, bed_type, street, postal_code, city, created_at`

// RoomAmenityNames returns every room amenity name, ordered by name.
func (db *DB) RoomAmenityNames(ctx context.Context) ([]string, error) {
	return db.referenceNames(ctx, roomAmenities)
}

// PropertyAmenityNames returns every property amenity name, ordered by name.
func (db *DB) PropertyAmenityNames(ctx context.Context) ([]string, error) {
	return db.referenceNames(ctx, propertyAmenities)
}

// HouseRuleNames returns every house rule name, ordered by name.
func (db *DB) HouseRuleNames(ctx context.Context) ([]string, error) {
	return db.referenceNames(ctx, houseRules)
}

// CityNames returns every city name, ordered by name.
func (db *DB) CityNames(ctx context.Context) ([]string, error) {
	return db.referenceNames(ctx, cities)
}

func (db *DB) referenceNames(ctx context.Context, ref refTable) (names []string, err error) {
	defer db.observe("reference_"+ref.name, time.Now(), &err)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	// #nosec G201 -- table name comes from a fixed refTable value
	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, ref.name))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", ref.name, err)
	}
	defer closeWithLog(rows, "rows")

	names = []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", ref.name, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", ref.name, err)
	}
	return names, nil
}

// ListingsByIDs returns the listings that exist among ids, ordered by id,
// with amenities and house rules loaded. Unknown ids are skipped.
func (db *DB) ListingsByIDs(ctx context.Context, ids []string) (listings []models.Listing, err error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []models.Listing{}, nil
	}
	defer db.observe("listings_by_ids", time.Now(), &err)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	filter := "id IN (" + placeholders(len(ids)) + ")"
	return db.queryListings(ctx, filter, stringArgs(ids)...)
}

// CandidateListings returns every listing not owned by excludeOwnerID,
// ordered by id, with amenities and house rules loaded.
func (db *DB) CandidateListings(ctx context.Context, excludeOwnerID string) (listings []models.Listing, err error) {
	defer db.observe("candidate_listings", time.Now(), &err)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	return db.queryListings(ctx, "owner_id <> ?", excludeOwnerID)
}

// GetListing returns one listing, or ErrNotFound.
func (db *DB) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	listings, err := db.ListingsByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	return &listings[0], nil
}

// queryListings loads the listings matching filter and then their relations.
// Rows are fully drained before the relation queries run so a single-
// connection pool never waits on itself.
func (db *DB) queryListings(ctx context.Context, filter string, args ...interface{}) ([]models.Listing, error) {
	// #nosec G202 -- filter is built from constant fragments and placeholders
	query := `SELECT ` + listingColumns + ` FROM listings WHERE ` + filter + ` ORDER BY id`

	listings, err := db.scanListings(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return listings, nil
	}

	index := make(map[string]*models.Listing, len(listings))
	for i := range listings {
		index[listings[i].ID] = &listings[i]
	}

	relationFilter := `listing_id IN (SELECT id FROM listings WHERE ` + filter + `)`
	relations := []struct {
		ref refTable
		set func(l *models.Listing, name string)
	}{
		{roomAmenities, func(l *models.Listing, n string) { l.RoomAmenities = append(l.RoomAmenities, n) }},
		{propertyAmenities, func(l *models.Listing, n string) { l.PropertyAmenities = append(l.PropertyAmenities, n) }},
		{houseRules, func(l *models.Listing, n string) { l.HouseRules = append(l.HouseRules, n) }},
	}
	for _, rel := range relations {
		if err := db.loadRelation(ctx, rel.ref, relationFilter, args, index, rel.set); err != nil {
			return nil, err
		}
	}

	return listings, nil
}

func (db *DB) scanListings(ctx context.Context, query string, args ...interface{}) ([]models.Listing, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer closeWithLog(rows, "rows")

	listings := []models.Listing{}
	for rows.Next() {
		var (
			l                        models.Listing
			listingType, propType    string
			bedType                  string
			street, postalCode, city sql.NullString
		)
		if err := rows.Scan(
			&l.ID, &l.OwnerID, &l.Title, &listingType, &propType, &l.SizeM2, &l.Rent,
			&l.BedroomsSingle, &l.BedroomsDouble, &l.FlatmatesFemale, &l.FlatmatesMale, &l.RoomSizeM2,
			&l.HasBed, &l.NoDeposit, &l.OpenEnded, &bedType, &street, &postalCode, &city, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		l.ListingType = models.ListingType(listingType)
		l.PropertyType = models.PropertyType(propType)
		l.BedType = models.BedType(bedType)
		if street.Valid || postalCode.Valid || city.Valid {
			l.Address = &models.Address{
				Street:     street.String,
				PostalCode: postalCode.String,
				City:       city.String,
			}
		}
		l.RoomAmenities = []string{}
		l.PropertyAmenities = []string{}
		l.HouseRules = []string{}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}
	return listings, nil
}

func (db *DB) loadRelation(
	ctx context.Context,
	ref refTable,
	filter string,
	args []interface{},
	index map[string]*models.Listing,
	set func(l *models.Listing, name string),
) error {
	// #nosec G201,G202 -- table name is fixed, filter uses placeholders
	query := fmt.Sprintf(`SELECT listing_id, name FROM %s WHERE %s ORDER BY listing_id, name`, ref.relation, filter)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", ref.relation, err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var listingID, name string
		if err := rows.Scan(&listingID, &name); err != nil {
			return fmt.Errorf("failed to scan %s: %w", ref.relation, err)
		}
		if l, ok := index[listingID]; ok {
			set(l, name)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating %s: %w", ref.relation, err)
	}
	return nil
}

// CreateListing inserts a listing with its relations. ID and CreatedAt are
// assigned when empty. Amenity, rule and city names that are not yet in
// their reference tables are added to them.
func (db *DB) CreateListing(ctx context.Context, l *models.Listing) (err error) {
	if l == nil {
		return errors.New("listing is required")
	}
	if l.OwnerID == "" {
		return errors.New("listing owner is required")
	}
	defer db.observe("create_listing", time.Now(), &err)

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var street, postalCode, city sql.NullString
	if l.Address != nil {
		street = sql.NullString{String: l.Address.Street, Valid: true}
		postalCode = sql.NullString{String: l.Address.PostalCode, Valid: true}
		city = sql.NullString{String: l.Address.City, Valid: l.Address.City != ""}
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO listings (`+listingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.OwnerID, l.Title, string(l.ListingType), string(l.PropertyType), l.SizeM2, l.Rent,
		l.BedroomsSingle, l.BedroomsDouble, l.FlatmatesFemale, l.FlatmatesMale, l.RoomSizeM2,
		l.HasBed, l.NoDeposit, l.OpenEnded, string(l.BedType), street, postalCode, city, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert listing %s: %w", l.ID, err)
	}

	relations := []struct {
		ref   refTable
		names []string
	}{
		{roomAmenities, l.RoomAmenities},
		{propertyAmenities, l.PropertyAmenities},
		{houseRules, l.HouseRules},
	}
	for _, rel := range relations {
		names := dedupe(rel.names)
		if err = insertReferenceNames(ctx, tx, rel.ref, names); err != nil {
			return err
		}
		for _, name := range names {
			// #nosec G201 -- table name comes from a fixed refTable value
			stmt := fmt.Sprintf(`INSERT INTO %s (listing_id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`, rel.ref.relation)
			if _, err = tx.ExecContext(ctx, stmt, l.ID, name); err != nil {
				return fmt.Errorf("failed to insert %s: %w", rel.ref.relation, err)
			}
		}
	}
	if city.Valid {
		if err = insertReferenceNames(ctx, tx, cities, []string{city.String}); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit listing %s: %w", l.ID, err)
	}
	return nil
}

// AddReferenceNames registers names in a reference table without attaching
// them to a listing. kind is one of roomAmenity, propertyAmenity, houseRule
// or city.
func (db *DB) AddReferenceNames(ctx context.Context, kind string, names []string) (err error) {
	ref, ok := refTableForKind(kind)
	if !ok {
		return fmt.Errorf("unknown reference kind %q", kind)
	}
	defer db.observe("add_reference_"+ref.name, time.Now(), &err)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err = insertReferenceNames(ctx, tx, ref, dedupe(names)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func refTableForKind(kind string) (refTable, bool) {
	switch kind {
	case "roomAmenity":
		return roomAmenities, true
	case "propertyAmenity":
		return propertyAmenities, true
	case "houseRule":
		return houseRules, true
	case "city":
		return cities, true
	default:
		return refTable{}, false
	}
}

func insertReferenceNames(ctx context.Context, tx *sql.Tx, ref refTable, names []string) error {
	// #nosec G201 -- table name comes from a fixed refTable value
	stmt := fmt.Sprintf(`INSERT INTO %s (name) VALUES (?) ON CONFLICT DO NOTHING`, ref.name)
	for _, name := range names {
		if _, err := tx.ExecContext(ctx, stmt, name); err != nil {
			return fmt.Errorf("failed to insert %s %q: %w", ref.name, name, err)
		}
	}
	return nil
}
