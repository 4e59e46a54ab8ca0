// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Movies lists every title in catalog order, for the selection box.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.ready(w) {
		return
	}

	titles := h.engine.Store().Titles()
	respondSuccess(w, r, models.MovieList{
		Count:  len(titles),
		Titles: titles,
	}, start, false)
}

// MoviePoster resolves the poster URL for one TMDB movie ID. Lookup failures
// degrade to a placeholder URL, so this endpoint only fails on a bad ID.
func (h *Handler) MoviePoster(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondErrorDetails(w, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "id must be a numeric TMDB movie ID",
			Details: map[string]interface{}{"field": "id"},
		}, nil)
		return
	}

	req := PosterRequest{ID: id}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	respondSuccess(w, r, models.PosterInfo{
		MovieID:   req.ID,
		PosterURL: h.posters.Poster(r.Context(), req.ID),
	}, start, false)
}
