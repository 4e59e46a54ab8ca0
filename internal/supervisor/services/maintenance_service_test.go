// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

type fakeGC struct {
	rewrites int32 // rounds that report a rewrite before reporting none
	err      error
	calls    atomic.Int32
}

func (f *fakeGC) RunGC() (bool, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return false, f.err
	}
	return n <= f.rewrites, nil
}

func TestMaintenanceService_Sweep(t *testing.T) {
	t.Parallel()

	lru := cache.NewLRU[string](10, 10*time.Millisecond)
	lru.Add("a", "1")
	lru.Add("b", "2")
	time.Sleep(20 * time.Millisecond)
	lru.Add("c", "3")

	before := testutil.ToFloat64(metrics.CacheEvictions.WithLabelValues("sweep_test"))

	svc := NewMaintenanceService(MaintenanceConfig{}, nil, zerolog.Nop(),
		SweepTarget{Name: "sweep_test", Cache: lru},
		SweepTarget{Name: "nil", Cache: nil},
	)
	if got := svc.Sweep(); got != 2 {
		t.Errorf("Sweep() = %d, want 2", got)
	}
	if lru.Len() != 1 {
		t.Errorf("Len() = %d, want 1", lru.Len())
	}
	if d := testutil.ToFloat64(metrics.CacheEvictions.WithLabelValues("sweep_test")) - before; d != 2 {
		t.Errorf("evictions delta = %v, want 2", d)
	}
}

func TestMaintenanceService_CollectGarbage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		gc        *fakeGC
		wantCalls int32
	}{
		{name: "nothing to rewrite", gc: &fakeGC{}, wantCalls: 1},
		{name: "rewrites until clean", gc: &fakeGC{rewrites: 3}, wantCalls: 4},
		{name: "bounded", gc: &fakeGC{rewrites: 100}, wantCalls: maxGCRounds},
		{name: "error stops", gc: &fakeGC{err: errors.New("disk full")}, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewMaintenanceService(MaintenanceConfig{}, tt.gc, zerolog.Nop())
			svc.CollectGarbage()
			if got := tt.gc.calls.Load(); got != tt.wantCalls {
				t.Errorf("RunGC calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestMaintenanceService_Serve(t *testing.T) {
	t.Parallel()

	gc := &fakeGC{}
	svc := NewMaintenanceService(MaintenanceConfig{
		SweepInterval: 5 * time.Millisecond,
		GCInterval:    5 * time.Millisecond,
	}, gc, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
	if gc.calls.Load() == 0 {
		t.Error("gc never ran")
	}
	if svc.String() != "maintenance-service" {
		t.Errorf("String() = %q", svc.String())
	}
}
