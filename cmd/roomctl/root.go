// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/roomies/internal/app"
	"github.com/tomtom215/roomies/internal/config"
	"github.com/tomtom215/roomies/internal/logging"
)

// env holds the hooks commands use to reach configuration and storage.
type env struct {
	loadConfig func() (*config.Config, error)
	open       func(cfg *config.Config) (*app.Components, error)
}

func defaultEnv() *env {
	return &env{
		loadConfig: config.Load,
		open: func(cfg *config.Config) (*app.Components, error) {
			return app.Bootstrap(cfg, logging.WithComponent("roomctl"))
		},
	}
}

func newRootCmd(e *env) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "roomctl",
		Short:        "Administer the Roomies recommendation engine",
		SilenceUsage: true,
		Long: `roomctl reads the server configuration and works on the catalog and
peer index directly. Run it against a stopped server when using DuckDB or a
BadgerDB peer index, both of which hold an exclusive file lock.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv(config.ConfigPathEnvVar, configPath); err != nil {
					return fmt.Errorf("set %s: %w", config.ConfigPathEnvVar, err)
				}
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (overrides "+config.ConfigPathEnvVar+")")

	root.AddCommand(
		newVocabCmd(e),
		newRecommendCmd(e),
		newIndexCmd(e),
		newTokenCmd(e),
	)
	return root
}

// withComponents loads the configuration, opens storage, runs fn and closes
// everything again.
func (e *env) withComponents(fn func(cfg *config.Config, c *app.Components) error) (err error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	c, err := e.open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(cfg, c)
}
