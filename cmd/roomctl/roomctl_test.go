// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/roomies/internal/app"
	"github.com/tomtom215/roomies/internal/auth"
	"github.com/tomtom215/roomies/internal/config"
	"github.com/tomtom215/roomies/internal/database"
	"github.com/tomtom215/roomies/internal/models"
	"github.com/tomtom215/roomies/internal/recommend"
)

const testSecret = "roomctl_test_secret_that_is_long_enough_0123456789"

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:", QueryTimeout: 5 * time.Second},
		Security: config.SecurityConfig{AuthMode: auth.AuthModeJWT, JWTSecret: testSecret},
		Recommend: config.RecommendConfig{
			ContentWeight:       0.6,
			CollaborativeWeight: 0.4,
			ContentScale:        100,
			MatchBonus:          10,
			MatchThreshold:      0.5,
			SimilarityThreshold: 0.3,
			CollaborativeScale:  50,
			MaxReasons:          3,
			DefaultLimit:        20,
			MaxLimit:            100,
			MinLikes:            1,
			CacheTTL:            time.Minute,
			PeerIndex:           config.PeerIndexConfig{Enabled: true, InMemory: true},
		},
	}
}

// testEnv bootstraps in-memory storage seeded with two listings and one like
// by alice. seed runs after the like, against the open components.
func testEnv(t *testing.T, mutate func(*config.Config), seed func(*app.Components)) *env {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}

	return &env{
		loadConfig: func() (*config.Config, error) { return cfg, nil },
		open: func(cfg *config.Config) (*app.Components, error) {
			c, err := app.Bootstrap(cfg, zerolog.Nop())
			if err != nil {
				return nil, err
			}
			ctx := context.Background()
			for _, l := range []models.Listing{
				{ID: "l1", OwnerID: "owner", ListingType: models.ListingTypeRoom, Rent: 500, RoomAmenities: []string{"desk"}},
				{ID: "l2", OwnerID: "owner", ListingType: models.ListingTypeRoom, Rent: 510, RoomAmenities: []string{"desk"}},
			} {
				l := l
				if err := c.DB.CreateListing(ctx, &l); err != nil {
					t.Fatalf("CreateListing() error = %v", err)
				}
			}
			if _, err := c.Likes.Like(ctx, "alice", "l1"); err != nil {
				t.Fatalf("Like() error = %v", err)
			}
			if seed != nil {
				seed(c)
			}
			return c, nil
		},
	}
}

func execute(t *testing.T, e *env, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(e)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVocabCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, testEnv(t, nil, nil), "vocab")
	if err != nil {
		t.Fatalf("vocab error = %v\n%s", err, out)
	}
	for _, want := range []string{"fingerprint:", "INDEX", recommend.DimListingTypeRoom, recommend.PrefixRoomAmenity + "desk"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRecommendCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, testEnv(t, nil, nil), "recommend", "--user", "alice", "--limit", "1")
	if err != nil {
		t.Fatalf("recommend error = %v\n%s", err, out)
	}

	var recs []recommend.Recommendation
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1 (limit)", len(recs))
	}
}

func TestRecommendCommandRequiresUser(t *testing.T) {
	t.Parallel()

	if _, err := execute(t, testEnv(t, nil, nil), "recommend"); err == nil || !strings.Contains(err.Error(), "--user") {
		t.Errorf("error = %v, want --user is required", err)
	}
}

func TestIndexPrune(t *testing.T) {
	t.Parallel()

	e := testEnv(t, nil, func(c *app.Components) {
		if err := c.PeerIndex.SavePreferences(context.Background(), "ghost", "old-fingerprint", []float64{1}); err != nil {
			t.Fatalf("SavePreferences() error = %v", err)
		}
	})

	out, err := execute(t, e, "index", "prune")
	if err != nil {
		t.Fatalf("index prune error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "removed 1 stale entries, 1 remaining") {
		t.Errorf("output = %q", out)
	}
}

func TestIndexPruneDisabled(t *testing.T) {
	t.Parallel()

	e := testEnv(t, func(c *config.Config) { c.Recommend.PeerIndex.Enabled = false }, nil)
	if _, err := execute(t, e, "index", "prune"); err == nil {
		t.Error("prune succeeded without a peer index")
	}
}

func TestTokenCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, testEnv(t, nil, nil), "token", "--user", "alice", "--ttl", "5m")
	if err != nil {
		t.Fatalf("token error = %v", err)
	}

	manager, err := auth.NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	claims, err := manager.ValidateToken(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID() != "alice" {
		t.Errorf("subject = %q", claims.UserID())
	}
}
