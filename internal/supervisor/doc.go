// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor provides process supervision using suture v4.

The tree isolates background maintenance from request serving:

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   └── MaintenanceService (cache expiry sweep, badger value-log GC)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff.
Supervisor events are logged through sutureslog, which takes a *slog.Logger;
logging.NewSlogLogger bridges it to zerolog.

The catalog load is not a supervised service: it runs once before the tree
starts, and a failure there is fatal.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewMaintenanceService(services.MaintenanceConfig{}, logger, targets...))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
*/
package supervisor
