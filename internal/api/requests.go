// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

// RecommendationsRequest holds validated parameters for GET /api/v1/recommendations.
// The upper bound on K is the engine's configured maximum and is checked by
// the handler.
type RecommendationsRequest struct {
	Title   string `query:"title" validate:"required,notblank,max=500"`
	K       int    `query:"k" validate:"min=1"`
	Posters bool   `query:"posters"`
}

// PosterRequest holds validated parameters for GET /api/v1/movies/{id}/poster.
type PosterRequest struct {
	ID int64 `query:"id" validate:"min=0"`
}
