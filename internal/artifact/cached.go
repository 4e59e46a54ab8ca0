// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"errors"

	"github.com/tomtom215/reelmatch/internal/kvstore"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// CachedSource keeps downloaded artifacts in the local key-value store so a
// restart does not download them again. Entries never expire, so the cache
// key must change whenever the bytes behind a reference can.
type CachedSource struct {
	next Source
	kv   *kvstore.Store
	key  func(ref string) string
}

// NewCachedSource wraps next with a cache in kv. key maps a reference to the
// identity of its content; nil keys on the reference itself.
func NewCachedSource(next Source, kv *kvstore.Store, key func(ref string) string) *CachedSource {
	if key == nil {
		key = func(ref string) string { return ref }
	}
	return &CachedSource{next: next, kv: kv, key: key}
}

// Fetch implements Source.
func (c *CachedSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	key := kvstore.PrefixArtifact + c.key(ref)

	data, err := c.kv.Get(key)
	if err == nil {
		metrics.RecordCacheLookup("artifact", true)
		logging.Debug().Str("ref", ref).Int("bytes", len(data)).Msg("Artifact served from local cache")
		return data, nil
	}
	if !errors.Is(err, kvstore.ErrNotFound) {
		logging.Warn().Err(err).Str("ref", ref).Msg("Artifact cache read failed")
	}
	metrics.RecordCacheLookup("artifact", false)

	data, err = c.next.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := c.kv.Set(key, data, 0); err != nil {
		logging.Warn().Err(err).Str("ref", ref).Msg("Artifact cache write failed")
	}
	return data, nil
}
