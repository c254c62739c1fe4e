// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/roomies/internal/app"
	"github.com/tomtom215/roomies/internal/config"
)

func newVocabCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Print the feature vocabulary with vector indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withComponents(func(_ *config.Config, c *app.Components) error {
				vocab, err := c.Engine.Vocabulary(cmd.Context())
				if err != nil {
					return fmt.Errorf("build vocabulary: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "fingerprint: %s\n", vocab.Fingerprint())
				fmt.Fprintf(out, "dimensions:  %d\n\n", vocab.Len())

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "INDEX\tFEATURE")
				for i, name := range vocab.Names() {
					fmt.Fprintf(tw, "%d\t%s\n", i, name)
				}
				return tw.Flush()
			})
		},
	}
}
