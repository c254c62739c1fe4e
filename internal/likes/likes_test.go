// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package likes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/roomies/internal/config"
	"github.com/tomtom215/roomies/internal/database"
	"github.com/tomtom215/roomies/internal/metrics"
	"github.com/tomtom215/roomies/internal/models"
	"github.com/tomtom215/roomies/internal/recommend"
)

type memoryStore struct {
	mu     sync.Mutex
	owners map[string]string
	likes  map[string]bool
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		owners: map[string]string{"l1": "landlord", "own": "alice"},
		likes:  map[string]bool{},
	}
}

func (m *memoryStore) ListingOwner(_ context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	owner, ok := m.owners[id]
	if !ok {
		return "", fmt.Errorf("listing %s: %w", id, database.ErrNotFound)
	}
	return owner, nil
}

func (m *memoryStore) CreateLike(_ context.Context, userID, listingID string) (*models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := userID + "/" + listingID
	if m.likes[key] {
		return nil, database.ErrDuplicate
	}
	m.likes[key] = true
	return &models.Like{UserID: userID, ListingID: listingID, CreatedAt: time.Now()}, nil
}

func (m *memoryStore) DeleteLike(_ context.Context, userID, listingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := userID + "/" + listingID
	if !m.likes[key] {
		return database.ErrNotFound
	}
	delete(m.likes, key)
	return nil
}

type recordingUpdater struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *recordingUpdater) UpdateUserPreferences(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, userID)
	return r.err
}

func (r *recordingUpdater) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		user      string
		listing   string
		wantErr   error
		wantHooks int
	}{
		{"creates like", "alice", "l1", nil, 1},
		{"missing listing", "alice", "nope", database.ErrNotFound, 0},
		{"own listing", "alice", "own", ErrOwnListing, 0},
		{"empty user", "", "l1", ErrEmptyUserID, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			updater := &recordingUpdater{}
			svc := NewService(newMemoryStore(), updater, zerolog.Nop())

			like, err := svc.Like(context.Background(), tt.user, tt.listing)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Like() error = %v, want %v", err, tt.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("Like() error = %v", err)
				}
				if like.UserID != tt.user || like.ListingID != tt.listing {
					t.Errorf("Like() = %+v", like)
				}
			}
			if got := updater.count(); got != tt.wantHooks {
				t.Errorf("preference updates = %d, want %d", got, tt.wantHooks)
			}
		})
	}
}

func TestLikeDuplicate(t *testing.T) {
	t.Parallel()
	svc := NewService(newMemoryStore(), nil, zerolog.Nop())

	if _, err := svc.Like(context.Background(), "alice", "l1"); err != nil {
		t.Fatalf("first Like() error = %v", err)
	}
	if _, err := svc.Like(context.Background(), "alice", "l1"); !errors.Is(err, database.ErrDuplicate) {
		t.Errorf("second Like() error = %v, want ErrDuplicate", err)
	}
}

func TestHookErrorIsSwallowed(t *testing.T) {
	t.Parallel()

	updater := &recordingUpdater{err: errors.New("storage down")}
	svc := NewService(newMemoryStore(), updater, zerolog.Nop())
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.PreferenceUpdates.WithLabelValues("unlike", "failure"))

	if _, err := svc.Like(ctx, "bob", "l1"); err != nil {
		t.Fatalf("Like() error = %v, want nil despite hook failure", err)
	}
	if err := svc.Unlike(ctx, "bob", "l1"); err != nil {
		t.Fatalf("Unlike() error = %v, want nil despite hook failure", err)
	}
	if got := updater.count(); got != 2 {
		t.Errorf("hook calls = %d, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.PreferenceUpdates.WithLabelValues("unlike", "failure")); got < before+1 {
		t.Errorf("unlike failure count = %v, want at least %v", got, before+1)
	}
}

func TestUnlike(t *testing.T) {
	t.Parallel()

	updater := &recordingUpdater{}
	svc := NewService(newMemoryStore(), updater, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Unlike(ctx, "alice", "l1"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Unlike() without like error = %v, want ErrNotFound", err)
	}
	if updater.count() != 0 {
		t.Error("hook ran for a failed unlike")
	}
	if _, err := svc.Like(ctx, "alice", "l1"); err != nil {
		t.Fatalf("Like() error = %v", err)
	}
	if err := svc.Unlike(ctx, "alice", "l1"); err != nil {
		t.Fatalf("Unlike() error = %v", err)
	}
	if updater.count() != 2 {
		t.Errorf("hook calls = %d, want 2", updater.count())
	}
	if err := svc.Unlike(ctx, "", "l1"); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("Unlike() empty user error = %v", err)
	}
}

func TestStoreErrorPropagates(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.err = errors.New("connection refused")
	svc := NewService(store, nil, zerolog.Nop())

	_, err := svc.Like(context.Background(), "alice", "l1")
	if err == nil || errors.Is(err, database.ErrNotFound) {
		t.Errorf("Like() error = %v, want a storage error", err)
	}
}

func TestResultLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("x: %w", database.ErrNotFound), "not_found"},
		{database.ErrDuplicate, "duplicate"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := resultLabel(tt.err); got != tt.want {
			t.Errorf("resultLabel(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

// TestLikesDriveRecommendations wires the service to a SQLite catalog and a
// real engine: the third like lifts the user out of cold start. Liked
// listings stay candidates, so only relative order is checked.
func TestLikesDriveRecommendations(t *testing.T) {
	t.Parallel()

	db, err := database.New(&config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:", QueryTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for i, city := range []string{"Lisbon", "Lisbon", "Lisbon", "Lisbon", "Porto"} {
		l := &models.Listing{
			ID:            fmt.Sprintf("l%d", i+1),
			OwnerID:       "landlord",
			ListingType:   models.ListingTypeRoom,
			PropertyType:  models.PropertyTypeApartment,
			Rent:          500,
			SizeM2:        70,
			RoomAmenities: []string{"desk"},
			Address:       &models.Address{City: city},
		}
		if err := db.CreateListing(ctx, l); err != nil {
			t.Fatalf("CreateListing() error = %v", err)
		}
	}

	engine, err := recommend.New(recommend.DefaultConfig(), db, zerolog.Nop())
	if err != nil {
		t.Fatalf("recommend.New() error = %v", err)
	}
	svc := NewService(db, engine, zerolog.Nop())

	for _, id := range []string{"l1", "l2"} {
		if _, err := svc.Like(ctx, "alice", id); err != nil {
			t.Fatalf("Like(%s) error = %v", id, err)
		}
	}
	recs, err := engine.GetRecommendations(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("cold start returned %d recommendations", len(recs))
	}

	if _, err := svc.Like(ctx, "alice", "l3"); err != nil {
		t.Fatalf("Like(l3) error = %v", err)
	}
	recs, err = engine.GetRecommendations(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("GetRecommendations() error = %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("no recommendations after third like")
	}
	rank := map[string]int{}
	for i, r := range recs {
		rank[r.ListingID] = i
	}
	l4, ok4 := rank["l4"]
	l5, ok5 := rank["l5"]
	if !ok4 || !ok5 {
		t.Fatalf("recommendations = %v, want l4 and l5 present", rank)
	}
	if l4 > l5 {
		t.Errorf("l4 ranked %d, l5 ranked %d; the Lisbon listing should rank first", l4, l5)
	}
}
