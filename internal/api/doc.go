// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP surface of Reelmatch.

# Endpoints

Health (not rate limited):
  - GET /api/v1/health/live: process liveness
  - GET /api/v1/health/ready: 200 once the catalog is loaded, 503 before

Catalog and recommendations:
  - GET /api/v1/movies: every title in catalog order
  - GET /api/v1/recommendations?title=Avatar&k=5&posters=true: ranked similar movies
  - GET /api/v1/movies/{id}/poster: poster URL for a TMDB movie ID

Observability:
  - GET /metrics: Prometheus exposition

# Response Format

Every endpoint except /metrics answers with models.APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "request_id": "...", "query_time_ms": 1}
	}

Errors carry a machine-readable code (VALIDATION_ERROR, MOVIE_NOT_FOUND,
NOT_FOUND, METHOD_NOT_ALLOWED, SERVICE_UNAVAILABLE, RATE_LIMIT_EXCEEDED).

# Middleware

Global: request ID with logging context, real IP, panic recovery, CORS.
API group: per-IP rate limiting (go-chi/httprate), security headers,
Prometheus metrics and gzip compression.
*/
package api
