// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// MovieNotFoundMessage is shown when the requested title is not in the catalog.
const MovieNotFoundMessage = "Movie not found in the dataset. Please select another one."

// Recommendations returns the movies most similar to ?title=, best first.
//
// Query parameters:
//   - title: exact catalog title (required)
//   - k: number of results, 1..max_k (default default_k)
//   - posters: when true, each item carries a poster_url
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.ready(w) {
		return
	}
	limits := h.engine.Config().Limits

	k, err := parseIntQuery(r, "k", limits.DefaultK)
	if err != nil {
		invalidParam(w, "k", err)
		return
	}
	withPosters, err := parseBoolQuery(r, "posters")
	if err != nil {
		invalidParam(w, "posters", err)
		return
	}

	req := RecommendationsRequest{
		Title:   r.URL.Query().Get("title"),
		K:       k,
		Posters: withPosters,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if req.K > limits.MaxK {
		invalidParam(w, "k", fmt.Errorf("k must be at most %d", limits.MaxK))
		return
	}

	resp, err := h.engine.Handle(r.Context(), recommend.Request{
		Title: req.Title,
		K:     req.K,
	})
	if errors.Is(err, recommend.ErrNotFound) {
		logging.Ctx(r.Context()).Debug().Str("title", sanitizeLogValue(req.Title)).Msg("unknown title")
		respondError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", MovieNotFoundMessage, nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute recommendations", err)
		return
	}

	if req.Posters {
		poster.Enrich(r.Context(), h.posters, resp.Items, h.config.Poster.Concurrency)
	}

	respondSuccess(w, r, models.RecommendationList{
		Title:     req.Title,
		K:         req.K,
		Exclusion: resp.Metadata.Exclusion,
		Items:     resp.Items,
	}, start, resp.Metadata.CacheHit)
}
