// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

/*
Package supervisor provides process supervision for the Roomies server using
suture v4.

# Overview

	RootSupervisor ("roomies")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheMaintenanceService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing maintenance pass is restarted with backoff without touching the
HTTP server.

# Logging

Supervisor events go through sutureslog to a *slog.Logger. Use
logging.NewSlogLogger so they end up in the zerolog output with the rest of
the process logs.

# Shutdown

Cancel the context passed to Serve. Each service gets ShutdownTimeout to
return; UnstoppedServiceReport lists the ones that did not.
*/
package supervisor
