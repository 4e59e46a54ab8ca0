// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// ErrNotFound is returned when the query title is not in the catalog.
// It also matches catalog.ErrNotFound.
var ErrNotFound = errors.New("movie not found")

// Engine ranks similar movies from an immutable catalog.
type Engine struct {
	store  *catalog.Store
	config *Config
	logger zerolog.Logger

	// cache holds Handle results keyed by title and k. Nil when disabled.
	cache *cache.LRU[[]Recommendation]
}

// NewEngine creates a recommendation engine over store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store *catalog.Store, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		store:  store,
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[[]Recommendation](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	e.logger.Info().
		Int("items", store.Len()).
		Str("exclusion", string(cfg.Exclusion)).
		Int("heap_threshold", cfg.HeapThreshold).
		Msg("recommendation engine ready")

	return e, nil
}

// Store returns the catalog the engine ranks over.
func (e *Engine) Store() *catalog.Store {
	return e.store
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Cache returns the result cache, or nil when caching is disabled.
func (e *Engine) Cache() *cache.LRU[[]Recommendation] {
	return e.cache
}

// Recommend returns up to k items most similar to title, best first.
// k <= 0 yields an empty result. The only error is ErrNotFound.
func (e *Engine) Recommend(title string, k int) ([]Recommendation, error) {
	start := time.Now()

	i, err := e.store.ResolveIndex(title)
	if err != nil {
		metrics.RecordRecommendation(false, 0)
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if k <= 0 {
		metrics.RecordRecommendation(true, time.Since(start))
		return []Recommendation{}, nil
	}

	row := e.store.Row(i)
	useHeap := e.config.HeapThreshold > 0 && len(row) >= e.config.HeapThreshold

	var picked []candidate
	switch e.config.Exclusion {
	case ExcludeFirstRank:
		picked = selectTop(row, k+1, useHeap, nil)
		if len(picked) > 0 {
			picked = picked[1:]
		}
	default:
		queryID := e.store.Item(i).ID
		picked = selectTop(row, k, useHeap, func(j int) bool {
			return j == i || e.store.Item(j).ID == queryID
		})
	}

	recs := make([]Recommendation, len(picked))
	for r, c := range picked {
		item := e.store.Item(c.index)
		recs[r] = Recommendation{
			Rank:  r + 1,
			ID:    item.ID,
			Title: item.Title,
			Score: c.score,
		}
	}

	metrics.RecordRecommendation(true, time.Since(start))
	return recs, nil
}

// Handle serves a request: it applies default and maximum k, consults the
// result cache and stamps response metadata. The returned items are owned
// by the caller.
func (e *Engine) Handle(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	req = e.prepareRequest(ctx, req)

	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	if resp := e.tryGetCachedResponse(req, start, logger); resp != nil {
		return resp, nil
	}

	recs, err := e.Recommend(req.Title, req.K)
	if err != nil {
		logger.Debug().Msg("title not in catalog")
		return nil, err
	}

	if e.cache != nil {
		e.cache.Add(cacheKey(req), recs)
	}

	logger.Debug().
		Int("results", len(recs)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return &Response{
		Items:    cloneRecommendations(recs),
		Metadata: e.buildResponseMetadata(req, start, false),
	}, nil
}

// prepareRequest fills in defaults and clamps k.
func (e *Engine) prepareRequest(ctx context.Context, req Request) Request {
	if req.K <= 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // Request passed by value is intentional
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("title", req.Title).
		Int("k", req.K).
		Logger()
}

// tryGetCachedResponse returns a cached response if one is available.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) tryGetCachedResponse(req Request, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil {
		return nil
	}
	recs, ok := e.cache.Get(cacheKey(req))
	metrics.RecordCacheLookup("recommendation", ok)
	if !ok {
		return nil
	}

	logger.Debug().Msg("cache hit")
	return &Response{
		Items:    cloneRecommendations(recs),
		Metadata: e.buildResponseMetadata(req, start, true),
	}
}

//nolint:gocritic // Request passed by value is intentional
func (e *Engine) buildResponseMetadata(req Request, start time.Time, cacheHit bool) ResponseMetadata {
	return ResponseMetadata{
		RequestID: req.RequestID,
		Title:     req.Title,
		K:         req.K,
		Exclusion: e.config.Exclusion,
		LatencyMS: time.Since(start).Milliseconds(),
		CacheHit:  cacheHit,
		Timestamp: time.Now().UTC(),
	}
}

//nolint:gocritic // Request passed by value is intentional
func cacheKey(req Request) string {
	return strconv.Itoa(req.K) + "|" + req.Title
}

func cloneRecommendations(recs []Recommendation) []Recommendation {
	out := make([]Recommendation, len(recs))
	copy(out, recs)
	return out
}
