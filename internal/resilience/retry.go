// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// RetryPolicy is an exponential backoff schedule.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	// Retryable decides whether an error is worth another attempt.
	// A nil Retryable retries every error.
	Retryable func(error) bool
}

// permanentError marks an error that must not be retried.
type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent wraps err so Retry returns it without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry executes fn with exponential backoff on failure. The context is
// checked before every attempt and during each wait.
func Retry(ctx context.Context, policy RetryPolicy, op string, fn func(context.Context) error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := policy.Delay

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if IsRejection(err) || (policy.Retryable != nil && !policy.Retryable(err)) {
			return err
		}

		if attempt < attempts-1 {
			logging.Warn().Err(err).Str("op", op).Int("attempt", attempt+1).
				Int("max_attempts", attempts).Dur("delay", delay).Msg("Retry attempt")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}

	if attempts == 1 {
		return err
	}
	return fmt.Errorf("max retry attempts reached: %w", err)
}
