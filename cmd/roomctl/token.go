// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/roomies/internal/auth"
)

// newTokenCmd signs a bearer token with the configured secret, for local
// testing against a server in jwt mode. It does not open storage.
func newTokenCmd(e *env) *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a test bearer token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}
			cfg, err := e.loadConfig()
			if err != nil {
				return fmt.Errorf("cannot load config: %w", err)
			}

			manager, err := auth.NewJWTManager(&cfg.Security)
			if err != nil {
				return err
			}
			token, err := manager.GenerateToken(userID, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "subject of the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
