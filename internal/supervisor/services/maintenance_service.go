// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Sweeper drops expired entries and reports how many it removed.
// Satisfied by *cache.LRU.
type Sweeper interface {
	CleanupExpired() int
}

// GarbageCollector reclaims storage space. Satisfied by *kvstore.Store.
type GarbageCollector interface {
	RunGC() (bool, error)
}

// SweepTarget names a cache for the eviction metric.
type SweepTarget struct {
	Name  string
	Cache Sweeper
}

// MaintenanceConfig holds intervals for the maintenance loop.
type MaintenanceConfig struct {
	// SweepInterval is how often expired cache entries are removed.
	// Default: 1m
	SweepInterval time.Duration

	// GCInterval is how often the badger value log is collected.
	// Default: 10m
	GCInterval time.Duration
}

// MaintenanceService periodically sweeps caches and collects the badger
// value log.
type MaintenanceService struct {
	config  MaintenanceConfig
	targets []SweepTarget
	gc      GarbageCollector
	logger  zerolog.Logger
	name    string
}

// NewMaintenanceService creates a maintenance service. gc may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(cfg MaintenanceConfig, gc GarbageCollector, logger zerolog.Logger, targets ...SweepTarget) *MaintenanceService {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.GCInterval <= 0 {
		cfg.GCInterval = 10 * time.Minute
	}

	kept := make([]SweepTarget, 0, len(targets))
	for _, t := range targets {
		if t.Cache != nil {
			kept = append(kept, t)
		}
	}

	return &MaintenanceService{
		config:  cfg,
		targets: kept,
		gc:      gc,
		logger:  logger.With().Str("service", "maintenance").Logger(),
		name:    "maintenance-service",
	}
}

// Serve implements the suture.Service interface.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	s.logger.Info().
		Int("caches", len(s.targets)).
		Dur("sweep_interval", s.config.SweepInterval).
		Dur("gc_interval", s.config.GCInterval).
		Msg("maintenance service starting")

	sweep := time.NewTicker(s.config.SweepInterval)
	defer sweep.Stop()
	gc := time.NewTicker(s.config.GCInterval)
	defer gc.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("maintenance service shutting down")
			return ctx.Err()

		case <-sweep.C:
			s.Sweep()

		case <-gc.C:
			s.CollectGarbage()
		}
	}
}

// Sweep removes expired entries from every target and returns the total.
func (s *MaintenanceService) Sweep() int {
	total := 0
	for _, t := range s.targets {
		n := t.Cache.CleanupExpired()
		if n > 0 {
			metrics.CacheEvictions.WithLabelValues(t.Name).Add(float64(n))
			s.logger.Debug().Str("cache", t.Name).Int("removed", n).Msg("expired cache entries removed")
		}
		total += n
	}
	return total
}

// CollectGarbage runs value-log GC until badger finds nothing to rewrite.
func (s *MaintenanceService) CollectGarbage() {
	if s.gc == nil {
		return
	}
	for rounds := 0; rounds < maxGCRounds; rounds++ {
		rewrote, err := s.gc.RunGC()
		if err != nil {
			s.logger.Warn().Err(err).Msg("value log gc failed")
			return
		}
		if !rewrote {
			return
		}
		s.logger.Debug().Int("round", rounds+1).Msg("value log rewritten")
	}
}

// maxGCRounds bounds one collection pass.
const maxGCRounds = 8

// String returns the service name for logging.
func (s *MaintenanceService) String() string {
	return s.name
}
