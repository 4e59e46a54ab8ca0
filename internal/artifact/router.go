// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/kvstore"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/resilience"
)

// Router dispatches a reference to the Source registered for its scheme.
type Router struct {
	sources map[string]Source
}

// NewRouter returns a router with only local files registered.
func NewRouter() *Router {
	r := &Router{sources: make(map[string]Source)}
	r.Register("file", FileSource{})
	return r
}

// Register sets the source for scheme, replacing any previous one.
func (r *Router) Register(scheme string, src Source) {
	r.sources[scheme] = src
}

// Fetch implements Source.
func (r *Router) Fetch(ctx context.Context, ref string) ([]byte, error) {
	scheme := Scheme(ref)
	src, ok := r.sources[scheme]
	if !ok {
		err := permanent(ref, fmt.Errorf("no source configured for scheme %q", scheme))
		metrics.RecordArtifactFetch(scheme, 0, err)
		return nil, err
	}

	data, err := src.Fetch(ctx, ref)
	metrics.RecordArtifactFetch(scheme, len(data), err)
	return data, err
}

// BuildRouter wires every source the configuration enables. Remote sources
// are guarded by retry and a per-scheme circuit breaker, then cached in kv
// when caching is enabled and kv is non-nil.
func BuildRouter(ctx context.Context, cfg *config.ArtifactsConfig, kv *kvstore.Store) (*Router, error) {
	r := NewRouter()

	policy := resilience.RetryPolicy{
		Attempts:  cfg.RetryAttempts,
		Delay:     cfg.RetryDelay,
		Retryable: Retryable,
	}
	remote := func(name string, src Source, key func(string) string) Source {
		var s Source = Guard(src, "artifact-"+name, policy, cfg.Timeout)
		if cfg.CacheEnabled && kv != nil {
			s = NewCachedSource(s, kv, key)
		}
		return s
	}

	httpSrc := NewHTTPSource(&http.Client{}, cfg.HuggingFace)
	web := remote("http", httpSrc, nil)
	r.Register("http", web)
	r.Register("https", web)
	r.Register("hf", remote("hf", httpSrc, httpSrc.CacheKey))

	if cfg.S3.Enabled {
		s3Src, err := NewS3SourceFromConfig(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		r.Register("s3", remote("s3", s3Src, nil))
	}

	if cfg.MinIO.Endpoint != "" {
		minioSrc, err := NewMinIOSource(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		r.Register("minio", remote("minio", minioSrc, nil))
	}

	return r, nil
}
