// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package recommend ranks catalog items by precomputed similarity.

Given a title, the Engine resolves it to a catalog index, orders that row of
the similarity matrix by score (descending, NaN last, ties to the lower
index), drops the query movie and returns the top k.

# Self-exclusion

Two policies are available through Config.Exclusion:

  - ExcludeIdentity (default) skips the query index and any item sharing
    the query's movie ID.
  - ExcludeFirstRank drops whatever lands at rank 0 of the full ordering.
    This reproduces the legacy output exactly, including its quirk when a
    different item ties the query's self-similarity at a lower index.

# Selection

Rows shorter than Config.HeapThreshold are fully sorted; longer rows use a
bounded heap of size k. Both strategies produce identical results.

# Usage

	engine, err := recommend.NewEngine(store, recommend.DefaultConfig(), logger)
	if err != nil {
	    return err
	}
	recs, err := engine.Recommend("Avatar", 5)
	if errors.Is(err, recommend.ErrNotFound) {
	    // title is not in the catalog
	}

Handle wraps Recommend for the HTTP layer: default and maximum k, a TTL'd
result cache, request metadata and Prometheus metrics.

# Thread Safety

Engine is safe for concurrent use. The Store is immutable and the result
cache is internally synchronized.
*/
package recommend
