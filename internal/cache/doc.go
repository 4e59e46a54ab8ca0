// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package cache provides the in-memory data structures behind recommendation
ranking and result caching.

# LRU

LRU is a generic, thread-safe least-recently-used cache with an optional TTL.
Expired entries are dropped lazily on Get and in bulk by CleanupExpired, which
the maintenance service calls on a ticker.

	c := cache.NewLRU[[]models.Recommendation](1024, 10*time.Minute)
	c.Add("avatar|5|identity", items)
	if items, ok := c.Get("avatar|5|identity"); ok {
	    // serve cached items
	}

The recommend engine caches ranked rows and the TMDB client caches resolved
poster URLs. Only successful poster lookups are stored.

# BoundedHeap

BoundedHeap keeps the best k values seen so far according to a caller
supplied ordering. Push is O(log k) and Sorted returns the kept values best
first. Top-k selection over a similarity row uses it when k is small compared
to the catalog size.

# Thread Safety

LRU is safe for concurrent use. BoundedHeap is not; callers own one heap per
ranking call.
*/
package cache
