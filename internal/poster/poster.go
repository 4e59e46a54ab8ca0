// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package poster resolves TMDB movie IDs to poster image URLs.
//
// Resolution never fails: lookups that cannot produce a real poster degrade
// to one of two placeholder URLs, so a missing image never suppresses a
// textual recommendation.
package poster

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

const (
	// NoPosterURL is returned when the movie has no poster or no API key is
	// configured.
	NoPosterURL = "https://via.placeholder.com/500x750.png?text=No+Poster+Available"

	// ErrorPosterURL is returned when the metadata lookup failed.
	ErrorPosterURL = "https://via.placeholder.com/500x750.png?text=API+Error"
)

// Resolver maps a movie ID to a poster URL.
type Resolver interface {
	Poster(ctx context.Context, id int64) string
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, id int64) string

// Poster implements Resolver.
func (f ResolverFunc) Poster(ctx context.Context, id int64) string {
	return f(ctx, id)
}

// Disabled is a Resolver that answers NoPosterURL without any lookup.
var Disabled Resolver = ResolverFunc(func(context.Context, int64) string {
	metrics.PosterLookupsTotal.WithLabelValues("disabled").Inc()
	return NoPosterURL
})

// Enrich sets PosterURL on every recommendation, resolving at most
// concurrency posters at a time. Order is preserved.
func Enrich(ctx context.Context, r Resolver, recs []recommend.Recommendation, concurrency int) {
	if len(recs) == 0 {
		return
	}
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range recs {
		g.Go(func() error {
			recs[i].PosterURL = r.Poster(gctx, recs[i].ID)
			return nil
		})
	}
	_ = g.Wait()
}
