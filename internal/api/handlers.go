// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Handler serves the HTTP endpoints.
type Handler struct {
	provider  *catalog.Provider
	engine    *recommend.Engine
	posters   poster.Resolver
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a handler.
//
// Dependencies:
//   - provider: the compute-once catalog holder, consulted by the readiness probe
//   - engine: ranks similar movies; nil until the catalog is loaded
//   - posters: resolves poster URLs; nil means poster.Disabled
//   - cfg: application configuration; only the recommend and poster sections are read
func NewHandler(provider *catalog.Provider, engine *recommend.Engine, posters poster.Resolver, cfg *config.Config) *Handler {
	if posters == nil {
		posters = poster.Disabled
	}
	if cfg == nil {
		cfg = config.Defaults()
	}
	return &Handler{
		provider:  provider,
		engine:    engine,
		posters:   posters,
		config:    cfg,
		startTime: time.Now(),
	}
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
}

// MethodNotAllowed answers known routes with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
}

// ready reports whether the engine can serve requests, answering 503 if not.
func (h *Handler) ready(w http.ResponseWriter) bool {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Catalog is not loaded yet", nil)
		return false
	}
	return true
}
