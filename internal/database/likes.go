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

	"github.com/tomtom215/roomies/internal/models"
)

// LikedListingIDs returns the ids of the listings userID has liked, oldest
// like first.
func (db *DB) LikedListingIDs(ctx context.Context, userID string) (ids []string, err error) {
	defer db.observe("liked_listing_ids", time.Now(), &err)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT listing_id FROM likes WHERE user_id = ? ORDER BY created_at, listing_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}
	defer closeWithLog(rows, "rows")

	ids = []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likes: %w", err)
	}
	return ids, nil
}

// ListingOwner returns the owner of a listing, or ErrNotFound.
func (db *DB) ListingOwner(ctx context.Context, listingID string) (owner string, err error) {
	defer db.observe("listing_owner", time.Now(), &err)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx, `SELECT owner_id FROM listings WHERE id = ?`, listingID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query listing owner: %w", err)
	}
	return owner, nil
}

// CreateLike records that userID likes listingID. It returns ErrDuplicate
// when the like already exists. The listing is not checked here.
func (db *DB) CreateLike(ctx context.Context, userID, listingID string) (like *models.Like, err error) {
	defer db.observe("create_like", time.Now(), &err)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO likes (user_id, listing_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
		userID, listingID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert like: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert result: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("like %s/%s: %w", userID, listingID, ErrDuplicate)
	}

	return &models.Like{UserID: userID, ListingID: listingID, CreatedAt: now}, nil
}

// DeleteLike removes a like. It returns ErrNotFound when there was none.
func (db *DB) DeleteLike(ctx context.Context, userID, listingID string) (err error) {
	defer db.observe("delete_like", time.Now(), &err)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND listing_id = ?`, userID, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("like %s/%s: %w", userID, listingID, ErrNotFound)
	}
	return nil
}
