// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package services provides suture.Service wrappers for Roomies components.

Each wrapper implements suture's Service interface and fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Runs ListenAndServe in a goroutine
  - Shuts down with a fresh deadline when the supervisor cancels the context
  - Returns a wrapped error when the listener fails, so suture restarts it

Cache Maintenance (CacheMaintenanceService):
  - Purges expired recommendation cache entries on a ticker
  - Publishes engine stats and the peer index size as Prometheus gauges

# Usage

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logger))
	tree.AddMaintenanceService(services.NewCacheMaintenanceService(engine, peerIndex, cfg.Recommend.PurgeInterval, logger))
	err := tree.Serve(ctx)
*/
package services
