// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services provides suture.Service wrappers for the long-running
// parts of the server.
//
//   - HTTPServerService: ListenAndServe with graceful Shutdown
//   - MaintenanceService: expiry sweep of the in-memory caches and badger
//     value-log GC
//
// Each service implements fmt.Stringer so supervisor events name it.
package services
