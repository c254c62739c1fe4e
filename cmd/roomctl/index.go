// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/roomies/internal/app"
	"github.com/tomtom215/roomies/internal/config"
)

func newIndexCmd(e *env) *cobra.Command {
	index := &cobra.Command{
		Use:   "index",
		Short: "Maintain the peer preference index",
	}

	index.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Remove entries built under a previous vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withComponents(func(_ *config.Config, c *app.Components) error {
				if c.PeerIndex == nil {
					return errors.New("peer index is disabled (recommend.peer_index.enabled=false)")
				}

				vocab, err := c.Engine.Vocabulary(cmd.Context())
				if err != nil {
					return fmt.Errorf("build vocabulary: %w", err)
				}
				removed, err := c.PeerIndex.Prune(cmd.Context(), vocab.Fingerprint())
				if err != nil {
					return fmt.Errorf("prune peer index: %w", err)
				}
				remaining, err := c.PeerIndex.Count(cmd.Context())
				if err != nil {
					return fmt.Errorf("count peer index: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "removed %d stale entries, %d remaining\n", removed, remaining)
				return nil
			})
		},
	})

	return index
}
