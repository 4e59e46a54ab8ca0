// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// APIResponse is the envelope every HTTP endpoint returns.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"title": "Avatar", "k": 5, "items": [...]},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 1}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "MOVIE_NOT_FOUND",
//	    "message": "Movie not found in the dataset. Please select another one."
//	  },
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries a machine-readable code and a message for humans.
//
// Error codes:
//   - VALIDATION_ERROR: invalid query parameters
//   - MOVIE_NOT_FOUND: the title is not in the catalog
//   - NOT_FOUND: unknown route
//   - SERVICE_UNAVAILABLE: catalog not loaded yet
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the readiness probe payload.
type HealthStatus struct {
	Status        string  `json:"status"`
	CatalogLoaded bool    `json:"catalog_loaded"`
	Movies        int     `json:"movies"`
	Uptime        float64 `json:"uptime"`
}

// MovieList is the selection list of every title in catalog order.
type MovieList struct {
	Count  int      `json:"count"`
	Titles []string `json:"titles"`
}

// RecommendationList is the /recommendations payload.
type RecommendationList struct {
	Title     string                     `json:"title"`
	K         int                        `json:"k"`
	Exclusion recommend.Exclusion        `json:"exclusion"`
	Items     []recommend.Recommendation `json:"items"`
}

// PosterInfo is the /movies/{id}/poster payload.
type PosterInfo struct {
	MovieID   int64  `json:"movie_id"`
	PosterURL string `json:"poster_url"`
}
