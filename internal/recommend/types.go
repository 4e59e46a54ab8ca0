// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "time"

// Recommendation is one ranked result.
type Recommendation struct {
	// Rank is the 1-based position in the result list.
	Rank int `json:"rank"`

	// ID is the TMDB movie ID.
	ID int64 `json:"movie_id"`

	Title string  `json:"title"`
	Score float32 `json:"score"`

	// PosterURL is filled in by the API layer when posters are requested.
	PosterURL string `json:"poster_url,omitempty"`
}

// Request is a recommendation request.
type Request struct {
	// Title is the query movie's exact title.
	Title string

	// K is the number of results. Zero means the configured default.
	K int

	// RequestID is used for logging and tracing. Generated when empty.
	RequestID string
}

// Response contains the ranked items and metadata.
type Response struct {
	Items    []Recommendation `json:"items"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string    `json:"request_id"`
	Title     string    `json:"title"`
	K         int       `json:"k"`
	Exclusion Exclusion `json:"exclusion"`
	LatencyMS int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
}
