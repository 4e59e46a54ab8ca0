// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"
)

// Exclusion selects how the query movie is kept out of its own results.
type Exclusion string

const (
	// ExcludeIdentity skips the query index and items with the query's ID.
	ExcludeIdentity Exclusion = "identity"

	// ExcludeFirstRank drops the rank-0 entry of the full ordering.
	ExcludeFirstRank Exclusion = "first_rank"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Exclusion is the self-exclusion policy.
	Exclusion Exclusion `json:"exclusion"`

	// HeapThreshold is the catalog size at which bounded heap selection
	// replaces a full sort. Zero always sorts.
	HeapThreshold int `json:"heap_threshold"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is used when a request does not set k.
	DefaultK int `json:"default_k"`

	// MaxK caps k for a single request.
	MaxK int `json:"max_k"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled turns on result caching.
	Enabled bool `json:"enabled"`

	// TTL is how long a cached result stays valid.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the cache size.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Exclusion:     ExcludeIdentity,
		HeapThreshold: 2048,
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Exclusion {
	case ExcludeIdentity, ExcludeFirstRank:
	default:
		return fmt.Errorf("unknown exclusion policy %q", c.Exclusion)
	}
	if c.HeapThreshold < 0 {
		return fmt.Errorf("heap_threshold must be non-negative, got %d", c.HeapThreshold)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("default_k must be at least 1, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("max_k (%d) must be >= default_k (%d)", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache max_entries must be at least 1, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}
