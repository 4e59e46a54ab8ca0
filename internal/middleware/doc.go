// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - Compression: gzip responses for clients that accept it
  - Request ID: UUID-based request tracking, propagated into the logging context
  - Prometheus Metrics: request count, latency and in-flight gauge per route

The middleware uses the http.HandlerFunc shape so it can wrap single handlers
directly; the api package adapts it into chi middleware:

	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.Compression))

Metrics are labelled with the chi route pattern when one is available, so
/api/v1/movies/{id}/poster is a single series regardless of the id.
*/
package middleware
