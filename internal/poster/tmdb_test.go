// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/kvstore"
)

func testPosterConfig(baseURL string) *config.PosterConfig {
	return &config.PosterConfig{
		Enabled:      true,
		APIKey:       "test-key",
		BaseURL:      baseURL,
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
		Language:     "en-US",
		Timeout:      2 * time.Second,
		RateLimit:    1000,
		Burst:        100,
		CacheSize:    16,
		CacheTTL:     time.Hour,
		Concurrency:  4,
	}
}

// tmdbServer answers /movie/{id} from bodies, counting requests.
func tmdbServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestTMDBClient_Outcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "poster found",
			status: http.StatusOK,
			body:   `{"id":19995,"poster_path":"/kyeqWdyUXW608qlYkRqosgbbJyK.jpg"}`,
			want:   "https://image.tmdb.org/t/p/w500/kyeqWdyUXW608qlYkRqosgbbJyK.jpg",
		},
		{name: "null poster path", status: http.StatusOK, body: `{"id":1,"poster_path":null}`, want: NoPosterURL},
		{name: "missing poster path", status: http.StatusOK, body: `{"id":1}`, want: NoPosterURL},
		{name: "not found", status: http.StatusNotFound, body: `{"status_code":34}`, want: ErrorPosterURL},
		{name: "server error", status: http.StatusInternalServerError, body: ``, want: ErrorPosterURL},
		{name: "bad json", status: http.StatusOK, body: `{"poster_path":`, want: ErrorPosterURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv, _ := tmdbServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			c := NewTMDBClient(testPosterConfig(srv.URL), nil)

			if got := c.Poster(context.Background(), 19995); got != tt.want {
				t.Errorf("Poster() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTMDBClient_RequestShape(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey, gotLang string
	srv, _ := tmdbServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotLang = r.URL.Query().Get("language")
		_, _ = w.Write([]byte(`{"poster_path":"/p.jpg"}`))
	})

	c := NewTMDBClient(testPosterConfig(srv.URL+"/"), nil)
	c.Poster(context.Background(), 603)

	if gotPath != "/movie/603" {
		t.Errorf("path = %q, want /movie/603", gotPath)
	}
	if gotKey != "test-key" || gotLang != "en-US" {
		t.Errorf("query api_key=%q language=%q", gotKey, gotLang)
	}
}

func TestTMDBClient_NoAPIKeySkipsNetwork(t *testing.T) {
	t.Parallel()

	srv, calls := tmdbServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"poster_path":"/p.jpg"}`))
	})
	cfg := testPosterConfig(srv.URL)
	cfg.APIKey = ""
	c := NewTMDBClient(cfg, nil)

	if got := c.Poster(context.Background(), 1); got != NoPosterURL {
		t.Errorf("Poster() = %q, want NoPosterURL", got)
	}
	if calls.Load() != 0 {
		t.Errorf("made %d network calls without an API key", calls.Load())
	}
}

func TestTMDBClient_CachesSuccessOnly(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fail.Store(true)
	srv, calls := tmdbServer(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/2") {
			_, _ = w.Write([]byte(`{"poster_path":null}`))
			return
		}
		_, _ = w.Write([]byte(`{"poster_path":"/one.jpg"}`))
	})
	c := NewTMDBClient(testPosterConfig(srv.URL), nil)
	ctx := context.Background()

	if got := c.Poster(ctx, 1); got != ErrorPosterURL {
		t.Fatalf("first Poster() = %q, want ErrorPosterURL", got)
	}

	fail.Store(false)
	want := "https://image.tmdb.org/t/p/w500/one.jpg"
	for range 3 {
		if got := c.Poster(ctx, 1); got != want {
			t.Fatalf("Poster() = %q, want %q", got, want)
		}
	}
	for range 2 {
		if got := c.Poster(ctx, 2); got != NoPosterURL {
			t.Fatalf("Poster(2) = %q, want NoPosterURL", got)
		}
	}

	// One failed call, one success for id 1, one no-poster for id 2.
	if n := calls.Load(); n != 3 {
		t.Errorf("network calls = %d, want 3", n)
	}
	if c.Cache().Len() != 2 {
		t.Errorf("memory cache len = %d, want 2", c.Cache().Len())
	}
}

func TestTMDBClient_PersistentStore(t *testing.T) {
	t.Parallel()

	store, err := kvstore.Open("")
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	srv, calls := tmdbServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"poster_path":"/stored.jpg"}`))
	})
	want := "https://image.tmdb.org/t/p/w500/stored.jpg"

	first := NewTMDBClient(testPosterConfig(srv.URL), store)
	if got := first.Poster(context.Background(), 42); got != want {
		t.Fatalf("Poster() = %q", got)
	}

	raw, err := store.Get(kvstore.PrefixPoster + "42")
	if err != nil || string(raw) != want {
		t.Fatalf("stored value = %q, %v", raw, err)
	}

	// A fresh client with an empty memory cache is served from badger.
	second := NewTMDBClient(testPosterConfig(srv.URL), store)
	if got := second.Poster(context.Background(), 42); got != want {
		t.Errorf("second Poster() = %q", got)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("network calls = %d, want 1", n)
	}
}

func TestTMDBClient_CanceledContext(t *testing.T) {
	t.Parallel()

	srv, _ := tmdbServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"poster_path":"/p.jpg"}`))
	})
	cfg := testPosterConfig(srv.URL)
	cfg.RateLimit = 0.001
	cfg.Burst = 1
	c := NewTMDBClient(cfg, nil)

	// Drain the single token so the next lookup has to wait.
	c.Poster(context.Background(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := c.Poster(ctx, 2); got != ErrorPosterURL {
		t.Errorf("Poster() = %q, want ErrorPosterURL", got)
	}
}

func TestClientFault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{&statusError{code: 404}, true},
		{&statusError{code: 401}, true},
		{&statusError{code: 429}, false},
		{&statusError{code: 503}, false},
		{fmt.Errorf("wrapped: %w", &statusError{code: 404}), true},
		{fmt.Errorf("dial tcp: refused"), false},
	}
	for _, tt := range tests {
		if got := clientFault(tt.err); got != tt.want {
			t.Errorf("clientFault(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
