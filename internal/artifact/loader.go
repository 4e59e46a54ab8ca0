// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Loader builds the catalog store from its two artifacts.
type Loader struct {
	source        Source
	catalogRef    string
	similarityRef string
	logger        zerolog.Logger
}

// NewLoader creates a loader reading both references through source.
func NewLoader(source Source, catalogRef, similarityRef string) *Loader {
	return &Loader{
		source:        source,
		catalogRef:    catalogRef,
		similarityRef: similarityRef,
		logger:        logging.WithComponent("artifact-loader"),
	}
}

// Load fetches and decodes both artifacts in parallel and builds the store.
// Every failure is a *catalog.LoadError.
func (l *Loader) Load(ctx context.Context) (*catalog.Store, error) {
	start := time.Now()

	var (
		items  []catalog.Item
		matrix *catalog.Matrix
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := l.source.Fetch(gctx, l.catalogRef)
		if err != nil {
			return catalog.NewLoadError(catalog.StageFetch, l.catalogRef, err)
		}
		items, err = DecodeCatalog(l.catalogRef, raw)
		if err != nil {
			return catalog.NewLoadError(catalog.StageDecode, l.catalogRef, err)
		}
		l.logger.Debug().Str("ref", l.catalogRef).Int("items", len(items)).Msg("Catalog decoded")
		return nil
	})
	g.Go(func() error {
		raw, err := l.source.Fetch(gctx, l.similarityRef)
		if err != nil {
			return catalog.NewLoadError(catalog.StageFetch, l.similarityRef, err)
		}
		matrix, err = DecodeMatrix(l.similarityRef, raw)
		if err != nil {
			return catalog.NewLoadError(catalog.StageDecode, l.similarityRef, err)
		}
		l.logger.Debug().Str("ref", l.similarityRef).Int("dim", matrix.Dim()).Msg("Similarity matrix decoded")
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	store, err := catalog.New(items, matrix)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.RecordCatalogLoad(store.Len(), elapsed)
	l.logger.Info().Int("movies", store.Len()).Dur("duration", elapsed).Msg("Catalog and similarity matrix loaded")
	return store, nil
}
