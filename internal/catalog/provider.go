// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc builds a Store, typically by fetching and decoding artifacts.
type LoadFunc func(ctx context.Context) (*Store, error)

// Provider runs a LoadFunc at most once per process and hands every caller
// the same result. Concurrent first callers share the single in-flight load.
// The outcome is kept whether it succeeded or not: a load failure is fatal,
// so there is no retry at this level.
type Provider struct {
	load  LoadFunc
	group singleflight.Group

	mu    sync.RWMutex
	done  bool
	store *Store
	err   error
}

// NewProvider returns a Provider around load.
func NewProvider(load LoadFunc) *Provider {
	return &Provider{load: load}
}

// Get returns the loaded Store, loading it on first use.
//
// The load runs with a context detached from any single caller, so one
// caller giving up does not fail the load for the others. ctx only bounds
// how long this caller waits.
func (p *Provider) Get(ctx context.Context) (*Store, error) {
	if store, err, ok := p.result(); ok {
		return store, err
	}

	ch := p.group.DoChan("store", func() (interface{}, error) {
		if store, err, ok := p.result(); ok {
			return store, err
		}
		store, err := p.load(context.WithoutCancel(ctx))
		if err != nil {
			err = NewLoadError(StageFetch, "", err)
		}

		p.mu.Lock()
		p.done, p.store, p.err = true, store, err
		p.mu.Unlock()

		return store, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Store), nil
	}
}

// Loaded reports whether a Store has been loaded successfully.
func (p *Provider) Loaded() bool {
	store, _, ok := p.result()
	return ok && store != nil
}

func (p *Provider) result() (*Store, error, bool) { //nolint:revive // ok flag last reads better here
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.store, p.err, p.done
}
