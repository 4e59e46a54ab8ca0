// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package resilience

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	t.Parallel()

	errTransient := errors.New("503 service unavailable")
	errFatal := errors.New("403 forbidden")

	tests := []struct {
		name      string
		policy    RetryPolicy
		failures  int
		failWith  error
		wantCalls int
		wantErr   error
		wantMax   bool
	}{
		{name: "first try", policy: RetryPolicy{Attempts: 3, Delay: time.Millisecond}, wantCalls: 1},
		{name: "succeeds on third", policy: RetryPolicy{Attempts: 3, Delay: time.Millisecond}, failures: 2, failWith: errTransient, wantCalls: 3},
		{name: "exhausted", policy: RetryPolicy{Attempts: 3, Delay: time.Millisecond}, failures: 5, failWith: errTransient, wantCalls: 3, wantErr: errTransient, wantMax: true},
		{name: "single attempt", policy: RetryPolicy{}, failures: 1, failWith: errTransient, wantCalls: 1, wantErr: errTransient},
		{
			name: "not retryable",
			policy: RetryPolicy{Attempts: 5, Delay: time.Millisecond, Retryable: func(err error) bool {
				return !errors.Is(err, errFatal)
			}},
			failures: 5, failWith: errFatal, wantCalls: 1, wantErr: errFatal,
		},
		{name: "permanent", policy: RetryPolicy{Attempts: 5, Delay: time.Millisecond}, failures: 5, failWith: Permanent(errFatal), wantCalls: 1, wantErr: errFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			calls := 0
			err := Retry(context.Background(), tt.policy, "test", func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("err = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if got := strings.Contains(err.Error(), "max retry attempts reached"); got != tt.wantMax {
				t.Errorf("max-attempts wrapping = %v, want %v (%v)", got, tt.wantMax, err)
			}
		})
	}
}

func TestRetry_ContextCanceledDuringWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, RetryPolicy{Attempts: 3, Delay: time.Hour}, "test", func(context.Context) error {
			calls++
			return errors.New("fail")
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Retry did not return after cancel")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_CanceledBeforeStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, RetryPolicy{Attempts: 3}, "test", func(context.Context) error {
		t.Error("fn called with canceled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
