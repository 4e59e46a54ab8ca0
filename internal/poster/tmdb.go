// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/kvstore"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/resilience"
)

// maxResponseBytes bounds the TMDB metadata body we are willing to read.
const maxResponseBytes = 1 << 20

// TMDBClient resolves posters through the TMDB movie details endpoint.
//
// Successful lookups, including "no poster", are memoized in memory and,
// when a store is supplied, in badger. Failures are never cached.
type TMDBClient struct {
	client    *http.Client
	apiKey    string
	baseURL   string
	imageBase string
	language  string

	limiter *rate.Limiter
	breaker *resilience.Breaker

	memory   *cache.LRU[string]
	store    *kvstore.Store
	storeTTL time.Duration

	logger zerolog.Logger
}

// tmdbMovie is the subset of the movie details response we read.
type tmdbMovie struct {
	PosterPath *string `json:"poster_path"`
}

// statusError is a non-2xx TMDB response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("TMDB returned status %d", e.code)
}

// clientFault reports whether err is a 4xx other than 429. Those say nothing
// about TMDB's health, so they do not count against the breaker.
func clientFault(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code >= 400 && se.code < 500 && se.code != http.StatusTooManyRequests
}

// NewTMDBClient creates a client from cfg. store may be nil.
func NewTMDBClient(cfg *config.PosterConfig, store *kvstore.Store) *TMDBClient {
	c := &TMDBClient{
		client:    &http.Client{Timeout: cfg.Timeout},
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		imageBase: strings.TrimRight(cfg.ImageBaseURL, "/"),
		language:  cfg.Language,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		breaker: resilience.NewBreaker("tmdb", resilience.BreakerConfig{
			IsSuccessful: func(err error) bool { return err == nil || clientFault(err) },
		}),
		store:    store,
		storeTTL: cfg.CacheTTL,
		logger:   logging.WithComponent("poster"),
	}
	if cfg.CacheSize > 0 {
		c.memory = cache.NewLRU[string](cfg.CacheSize, cfg.CacheTTL)
	}
	return c
}

// Cache returns the in-memory poster cache, or nil when disabled.
func (c *TMDBClient) Cache() *cache.LRU[string] {
	return c.memory
}

// Poster implements Resolver.
func (c *TMDBClient) Poster(ctx context.Context, id int64) string {
	if c.apiKey == "" {
		metrics.PosterLookupsTotal.WithLabelValues("disabled").Inc()
		return NoPosterURL
	}

	key := strconv.FormatInt(id, 10)
	if u, ok := c.cached(key); ok {
		return u
	}

	path, err := c.fetchPosterPath(ctx, id)
	if err != nil {
		metrics.PosterLookupsTotal.WithLabelValues("error").Inc()
		logging.Ctx(ctx).Debug().Str("error", logging.SanitizeError(err)).Int64("movie_id", id).Msg("poster lookup failed")
		return ErrorPosterURL
	}

	u := NoPosterURL
	outcome := "missing"
	if path != "" {
		u = c.imageBase + "/" + strings.TrimLeft(path, "/")
		outcome = "found"
	}
	metrics.PosterLookupsTotal.WithLabelValues(outcome).Inc()

	c.remember(key, u)
	return u
}

// cached checks memory first, then the persistent store.
func (c *TMDBClient) cached(key string) (string, bool) {
	if c.memory != nil {
		u, ok := c.memory.Get(key)
		metrics.RecordCacheLookup("poster", ok)
		if ok {
			return u, true
		}
	}
	if c.store == nil {
		return "", false
	}

	raw, err := c.store.Get(kvstore.PrefixPoster + key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			c.logger.Warn().Err(err).Str("movie_id", key).Msg("poster store read failed")
		}
		metrics.RecordCacheLookup("poster_store", false)
		return "", false
	}
	metrics.RecordCacheLookup("poster_store", true)

	u := string(raw)
	if c.memory != nil {
		c.memory.Add(key, u)
	}
	return u, true
}

func (c *TMDBClient) remember(key, u string) {
	if c.memory != nil {
		c.memory.Add(key, u)
	}
	if c.store != nil {
		if err := c.store.Set(kvstore.PrefixPoster+key, []byte(u), c.storeTTL); err != nil {
			c.logger.Warn().Err(err).Str("movie_id", key).Msg("poster store write failed")
		}
	}
}

// fetchPosterPath returns the poster_path field, or "" when TMDB has none.
func (c *TMDBClient) fetchPosterPath(ctx context.Context, id int64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	path, err := resilience.Execute(c.breaker, func() (string, error) {
		return c.queryMovie(ctx, id)
	})
	metrics.PosterFetchDuration.Observe(time.Since(start).Seconds())
	return path, err
}

func (c *TMDBClient) queryMovie(ctx context.Context, id int64) (string, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}
	endpoint := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, id, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query TMDB: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &statusError{code: resp.StatusCode}
	}

	var movie tmdbMovie
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&movie); err != nil {
		return "", fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	if movie.PosterPath == nil {
		return "", nil
	}
	return *movie.PosterPath, nil
}
