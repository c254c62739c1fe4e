// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package main

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/roomies/internal/app"
	"github.com/tomtom215/roomies/internal/config"
	"github.com/tomtom215/roomies/internal/recommend"
)

func newRecommendCmd(e *env) *cobra.Command {
	var (
		userID string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommendations for a user as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}
			return e.withComponents(func(_ *config.Config, c *app.Components) error {
				recs, err := c.Engine.GetRecommendations(cmd.Context(), userID, limit)
				if err != nil {
					return fmt.Errorf("recommend for %s: %w", userID, err)
				}
				if recs == nil {
					recs = []recommend.Recommendation{}
				}

				data, err := json.MarshalIndent(recs, "", "  ")
				if err != nil {
					return fmt.Errorf("encode recommendations: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id to recommend for")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results (0 uses recommend.default_limit)")
	return cmd
}
