// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tomtom215/roomies/internal/metrics"
)

// queryContext bounds ctx by the configured per-query timeout. An earlier
// deadline on ctx still wins.
func (db *DB) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// observe records query latency and errors under operation. ErrNotFound and
// ErrDuplicate are outcomes, not failures, and are not counted as errors.
//
//	defer db.observe("liked_listing_ids", time.Now(), &err)
func (db *DB) observe(operation string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
		err = nil
	}
	metrics.RecordDBQuery(operation, time.Since(start), err)
}

// placeholders returns "?, ?, ?" for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// stringArgs converts ids to query arguments.
func stringArgs(ids []string) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// dedupe returns names without blanks or repeats, preserving order.
func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
