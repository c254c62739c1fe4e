// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/roomies/internal/config"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

func testJWTConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		AuthMode:  AuthModeJWT,
		JWTSecret: testSecret,
	}
}

func TestNewJWTManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
	}{
		{"valid secret", testJWTConfig(), false},
		{"empty secret", &config.SecurityConfig{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			manager, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil || manager == nil {
				t.Errorf("NewJWTManager() = %v, %v", manager, err)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	token, err := manager.GenerateToken("alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID() != "alice" {
		t.Errorf("UserID() = %q, want alice", claims.UserID())
	}
}

func signWith(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return s
}

func TestValidateTokenRejects(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	now := time.Now()
	valid := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", signWith(t, jwt.SigningMethodHS256, []byte("another_secret_that_is_long_enough_123"), valid)},
		{"alg none", signWith(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid)},
		{"HS512", signWith(t, jwt.SigningMethodHS512, []byte(testSecret), valid)},
		{"expired", signWith(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		})},
		{"no expiry", signWith(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Subject: "alice"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := manager.ValidateToken(tt.token); err == nil {
				t.Error("ValidateToken() accepted the token")
			}
		})
	}
}

func TestValidateTokenMissingSubject(t *testing.T) {
	t.Parallel()

	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	token := signWith(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrMissingSubject) {
		t.Errorf("ValidateToken() error = %v, want ErrMissingSubject", err)
	}
}

func TestValidateTokenIssuer(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	cfg.JWTIssuer = "accounts.roomies"
	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	good, err := manager.GenerateToken("alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := manager.ValidateToken(good); err != nil {
		t.Errorf("ValidateToken() with matching issuer error = %v", err)
	}

	bad := signWith(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if _, err := manager.ValidateToken(bad); err == nil {
		t.Error("ValidateToken() accepted a foreign issuer")
	}
}
