// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/artifact"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/kvstore"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// engineConfig maps the recommend config section onto the engine's config.
func engineConfig(rc *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		Exclusion:     recommend.Exclusion(rc.Exclusion),
		HeapThreshold: rc.HeapThreshold,
		Limits: recommend.LimitsConfig{
			DefaultK: rc.DefaultK,
			MaxK:     rc.MaxK,
		},
		Cache: recommend.CacheConfig{
			Enabled:    rc.CacheSize > 0,
			TTL:        rc.CacheTTL,
			MaxEntries: rc.CacheSize,
		},
	}
}

// newProvider wires the artifact sources into a compute-once catalog holder.
func newProvider(ctx context.Context, cfg *config.ArtifactsConfig, kv *kvstore.Store) (*catalog.Provider, error) {
	router, err := artifact.BuildRouter(ctx, cfg, kv)
	if err != nil {
		return nil, fmt.Errorf("build artifact sources: %w", err)
	}
	loader := artifact.NewLoader(router, cfg.CatalogRef, cfg.SimilarityRef)
	return catalog.NewProvider(loader.Load), nil
}

// posterResolver returns the TMDB client, or poster.Disabled when posters are
// switched off or no API key is configured. The client's memory cache is
// returned for the maintenance sweep.
func posterResolver(cfg *config.PosterConfig, kv *kvstore.Store) (poster.Resolver, services.Sweeper) {
	if !cfg.Enabled || cfg.APIKey == "" {
		return poster.Disabled, nil
	}
	client := poster.NewTMDBClient(cfg, kv)
	if c := client.Cache(); c != nil {
		return client, c
	}
	return client, nil
}

// sweepTargets lists the in-memory caches the maintenance service expires.
func sweepTargets(engine *recommend.Engine, posterCache services.Sweeper) []services.SweepTarget {
	var targets []services.SweepTarget
	if c := engine.Cache(); c != nil {
		targets = append(targets, services.SweepTarget{Name: "recommendation", Cache: c})
	}
	if posterCache != nil {
		targets = append(targets, services.SweepTarget{Name: "poster", Cache: posterCache})
	}
	return targets
}
