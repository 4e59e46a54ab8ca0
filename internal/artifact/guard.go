// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/reelmatch/internal/resilience"
)

// GuardedSource retries a remote source with backoff behind a circuit breaker.
type GuardedSource struct {
	next    Source
	breaker *resilience.Breaker
	policy  resilience.RetryPolicy
	timeout time.Duration
}

// Guard wraps next. A zero timeout leaves each attempt bounded only by ctx.
func Guard(next Source, name string, policy resilience.RetryPolicy, timeout time.Duration) *GuardedSource {
	return &GuardedSource{
		next:    next,
		breaker: resilience.NewBreaker(name, resilience.BreakerConfig{}),
		policy:  policy,
		timeout: timeout,
	}
}

// Fetch implements Source.
func (g *GuardedSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	var data []byte
	err := resilience.Retry(ctx, g.policy, "artifact fetch", func(ctx context.Context) error {
		var err error
		data, err = resilience.Execute(g.breaker, func() ([]byte, error) {
			attemptCtx := ctx
			if g.timeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, g.timeout)
				defer cancel()
			}
			return g.next.Fetch(attemptCtx, ref)
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrFetch) {
			err = transient(ref, err)
		}
		return nil, err
	}
	return data, nil
}
