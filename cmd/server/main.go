// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/roomies/internal/api"
	"github.com/tomtom215/roomies/internal/app"
	"github.com/tomtom215/roomies/internal/auth"
	"github.com/tomtom215/roomies/internal/config"
	"github.com/tomtom215/roomies/internal/logging"
	"github.com/tomtom215/roomies/internal/supervisor"
	"github.com/tomtom215/roomies/internal/supervisor/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_driver", cfg.Database.Driver).
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Starting Roomies with supervisor tree")

	components, err := app.Bootstrap(cfg, logging.WithComponent("recommend"))
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize components")
		return 1
	}
	defer func() {
		if err := components.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()

	authMiddleware, err := auth.NewMiddleware(&cfg.Security)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize authentication")
		return 1
	}

	deps := api.Dependencies{
		Recommender: components.Engine,
		Likes:       components.Likes,
		DB:          components.DB,
	}
	if components.Breaker != nil {
		deps.Breaker = components.Breaker
	}
	router := api.NewRouter(
		api.NewHandler(deps),
		authMiddleware,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
		cfg.Server.Timeout,
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())

	var peers services.PeerCounter
	if components.PeerIndex != nil {
		peers = components.PeerIndex
	}
	tree.AddMaintenanceService(services.NewCacheMaintenanceService(
		components.Engine, peers, cfg.Recommend.PurgeInterval, logging.WithComponent("maintenance"),
	))
	tree.AddAPIService(services.NewHTTPServerService(
		server, server.Addr, cfg.Server.ShutdownTimeout, logging.WithComponent("http"),
	))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel delivers exactly one value, the result of the root Serve.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
	return 0
}
