// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/kvstore"
	"github.com/tomtom215/reelmatch/internal/resilience"
)

func TestFetchError_Matching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		err           error
		wantNotFound  bool
		wantRetryable bool
	}{
		{name: "not found", err: notFound("r", errors.New("gone")), wantNotFound: true},
		{name: "permanent", err: permanent("r", errors.New("403"))},
		{name: "transient", err: transient("r", errors.New("reset")), wantRetryable: true},
		{name: "plain error", err: errors.New("boom"), wantRetryable: true},
		{name: "canceled", err: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var fe *FetchError
			if errors.As(tt.err, &fe) && !errors.Is(tt.err, ErrFetch) {
				t.Error("FetchError does not match ErrFetch")
			}
			if got := errors.Is(tt.err, ErrNotFound); got != tt.wantNotFound {
				t.Errorf("Is(ErrNotFound) = %v, want %v", got, tt.wantNotFound)
			}
			if got := Retryable(tt.err); got != tt.wantRetryable {
				t.Errorf("Retryable = %v, want %v", got, tt.wantRetryable)
			}
		})
	}
}

func TestScheme(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"data/movies.json":           "file",
		"/abs/movies.json":           "file",
		"file:///srv/movies.json":    "file",
		"HTTPS://example.com/a.json": "https",
		"hf://owner/repo/a.json":     "hf",
		"s3://bucket/key":            "s3",
		"minio://bucket/key":         "minio",
	}
	for ref, want := range tests {
		if got := Scheme(ref); got != want {
			t.Errorf("Scheme(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestSplitBucketKey(t *testing.T) {
	t.Parallel()

	bucket, key, err := splitBucketKey("s3://models/reelmatch/similarity.simm.zst")
	if err != nil || bucket != "models" || key != "reelmatch/similarity.simm.zst" {
		t.Errorf("got (%q, %q, %v)", bucket, key, err)
	}
	for _, bad := range []string{"s3://bucket", "s3://bucket/", "s3:///key"} {
		if _, _, err := splitBucketKey(bad); err == nil {
			t.Errorf("splitBucketKey(%q) succeeded", bad)
		}
	}
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "movies.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, ref := range []string{path, "file://" + path} {
		data, err := FileSource{}.Fetch(context.Background(), ref)
		if err != nil {
			t.Fatalf("Fetch(%q): %v", ref, err)
		}
		if string(data) != catalogJSON {
			t.Errorf("Fetch(%q) returned wrong content", ref)
		}
	}

	_, err := FileSource{}.Fetch(context.Background(), filepath.Join(dir, "missing.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file error = %v, want ErrNotFound", err)
	}

	_, err = FileSource{}.Fetch(context.Background(), dir)
	if !errors.Is(err, ErrFetch) || errors.Is(err, ErrNotFound) || Retryable(err) {
		t.Errorf("directory error = %v, want permanent fetch error", err)
	}
}

func TestHTTPSource_ResolveURL(t *testing.T) {
	t.Parallel()

	src := NewHTTPSource(nil, config.HuggingFaceConfig{})
	tests := []struct {
		ref     string
		want    string
		hub     bool
		wantErr bool
	}{
		{
			ref:  "hf://N4F1U/Movie_Recommender_tmdb/movies.json",
			want: "https://huggingface.co/N4F1U/Movie_Recommender_tmdb/resolve/main/movies.json",
			hub:  true,
		},
		{
			ref:  "hf://owner/repo/nested/dir/similarity.simm.zst",
			want: "https://huggingface.co/owner/repo/resolve/main/nested/dir/similarity.simm.zst",
			hub:  true,
		},
		{ref: "https://example.com/a.json", want: "https://example.com/a.json"},
		{ref: "hf://owner/repo", wantErr: true},
		{ref: "hf://owner//file", wantErr: true},
	}

	for _, tt := range tests {
		got, hub, err := src.ResolveURL(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResolveURL(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if got != tt.want || hub != tt.hub {
			t.Errorf("ResolveURL(%q) = (%q, %v), want (%q, %v)", tt.ref, got, hub, tt.want, tt.hub)
		}
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	t.Parallel()

	var lastAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAuth.Store(r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/owner/repo/resolve/v2/movies.json", "/plain/movies.json":
			_, _ = w.Write([]byte(catalogJSON))
		case "/busy":
			w.WriteHeader(http.StatusTooManyRequests)
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	src := NewHTTPSource(srv.Client(), config.HuggingFaceConfig{
		Endpoint: srv.URL + "/",
		Revision: "v2",
		Token:    "hf_secret",
	})
	ctx := context.Background()

	data, err := src.Fetch(ctx, "hf://owner/repo/movies.json")
	if err != nil || string(data) != catalogJSON {
		t.Fatalf("hf fetch = %q, %v", data, err)
	}
	if got := lastAuth.Load(); got != "Bearer hf_secret" {
		t.Errorf("hub Authorization = %q", got)
	}

	if _, err := src.Fetch(ctx, srv.URL+"/plain/movies.json"); err != nil {
		t.Fatalf("plain fetch: %v", err)
	}
	if got := lastAuth.Load(); got != "" {
		t.Errorf("token leaked to non-hub URL: %q", got)
	}

	tests := []struct {
		path          string
		wantNotFound  bool
		wantRetryable bool
	}{
		{path: "/missing", wantNotFound: true},
		{path: "/busy", wantRetryable: true},
		{path: "/broken", wantRetryable: true},
		{path: "/forbidden"},
	}
	for _, tt := range tests {
		_, err := src.Fetch(ctx, srv.URL+tt.path)
		if !errors.Is(err, ErrFetch) {
			t.Errorf("%s: error %v is not ErrFetch", tt.path, err)
		}
		if errors.Is(err, ErrNotFound) != tt.wantNotFound {
			t.Errorf("%s: not found = %v", tt.path, !tt.wantNotFound)
		}
		if Retryable(err) != tt.wantRetryable {
			t.Errorf("%s: retryable = %v", tt.path, !tt.wantRetryable)
		}
	}
}

// fakeS3 serves objects from a map.
type fakeS3 struct {
	objects map[string][]byte
	err     error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func TestS3Source_Fetch(t *testing.T) {
	t.Parallel()

	src := NewS3Source(&fakeS3{objects: map[string][]byte{
		"models/reelmatch/movies.json": []byte(catalogJSON),
	}})
	ctx := context.Background()

	data, err := src.Fetch(ctx, "s3://models/reelmatch/movies.json")
	if err != nil || string(data) != catalogJSON {
		t.Fatalf("Fetch = %q, %v", data, err)
	}

	if _, err := src.Fetch(ctx, "s3://models/absent.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key error = %v, want ErrNotFound", err)
	}
	if _, err := src.Fetch(ctx, "s3://models"); Retryable(err) || !errors.Is(err, ErrFetch) {
		t.Errorf("bad reference error = %v, want permanent", err)
	}

	failing := NewS3Source(&fakeS3{err: errors.New("connection reset")})
	if _, err := failing.Fetch(ctx, "s3://models/a.json"); !Retryable(err) {
		t.Errorf("network error = %v, want retryable", err)
	}

	missingBucket := NewS3Source(&fakeS3{err: &types.NoSuchBucket{}})
	if _, err := missingBucket.Fetch(ctx, "s3://nope/a.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing bucket error = %v, want ErrNotFound", err)
	}
}

func TestRouter_Dispatch(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	r.Register("mem", SourceFunc(func(_ context.Context, ref string) ([]byte, error) {
		return []byte("mem:" + ref), nil
	}))

	data, err := r.Fetch(context.Background(), "mem://thing")
	if err != nil || string(data) != "mem:mem://thing" {
		t.Errorf("Fetch = %q, %v", data, err)
	}

	_, err = r.Fetch(context.Background(), "gopher://thing")
	if !errors.Is(err, ErrFetch) || Retryable(err) {
		t.Errorf("unknown scheme error = %v, want permanent fetch error", err)
	}
}

func TestBuildRouter_Schemes(t *testing.T) {
	t.Parallel()

	cfg := &config.ArtifactsConfig{
		Timeout:       time.Second,
		RetryAttempts: 1,
		MinIO:         config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"},
	}
	r, err := BuildRouter(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("BuildRouter: %v", err)
	}

	for _, scheme := range []string{"file", "http", "https", "hf", "minio"} {
		if _, ok := r.sources[scheme]; !ok {
			t.Errorf("scheme %q not registered", scheme)
		}
	}
	if _, ok := r.sources["s3"]; ok {
		t.Error("s3 registered while disabled")
	}
}

func TestGuardedSource_RetriesTransient(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	flaky := SourceFunc(func(_ context.Context, ref string) ([]byte, error) {
		if calls.Add(1) < 3 {
			return nil, transient(ref, errors.New("503"))
		}
		return []byte("ok"), nil
	})

	g := Guard(flaky, "artifact-test-retry", resilience.RetryPolicy{
		Attempts: 3, Delay: time.Millisecond, Retryable: Retryable,
	}, time.Second)

	data, err := g.Fetch(context.Background(), "https://example.com/a")
	if err != nil || string(data) != "ok" {
		t.Fatalf("Fetch = %q, %v", data, err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestGuardedSource_StopsOnPermanent(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	missing := SourceFunc(func(_ context.Context, ref string) ([]byte, error) {
		calls.Add(1)
		return nil, notFound(ref, errors.New("404"))
	})

	g := Guard(missing, "artifact-test-permanent", resilience.RetryPolicy{
		Attempts: 5, Delay: time.Millisecond, Retryable: Retryable,
	}, 0)

	_, err := g.Fetch(context.Background(), "https://example.com/a")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestGuardedSource_AttemptTimeout(t *testing.T) {
	t.Parallel()

	slow := SourceFunc(func(ctx context.Context, _ string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	g := Guard(slow, "artifact-test-timeout", resilience.RetryPolicy{Attempts: 2, Delay: time.Millisecond}, 10*time.Millisecond)

	_, err := g.Fetch(context.Background(), "https://example.com/a")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("error = %v, want ErrFetch", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded in chain", err)
	}
}

func TestCachedSource(t *testing.T) {
	t.Parallel()

	kv, err := kvstore.Open("")
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	var calls atomic.Int32
	var fail atomic.Bool
	next := SourceFunc(func(_ context.Context, ref string) ([]byte, error) {
		calls.Add(1)
		if fail.Load() {
			return nil, transient(ref, errors.New("offline"))
		}
		return []byte("payload:" + ref), nil
	})
	c := NewCachedSource(next, kv, nil)
	ctx := context.Background()

	for range 3 {
		data, err := c.Fetch(ctx, "hf://o/r/movies.json")
		if err != nil || string(data) != "payload:hf://o/r/movies.json" {
			t.Fatalf("Fetch = %q, %v", data, err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("upstream calls = %d, want 1", calls.Load())
	}

	fail.Store(true)
	if _, err := c.Fetch(ctx, "hf://o/r/other.json"); !errors.Is(err, ErrFetch) {
		t.Errorf("error = %v, want ErrFetch", err)
	}
	if _, err := kv.Get(kvstore.PrefixArtifact + "hf://o/r/other.json"); !errors.Is(err, kvstore.ErrNotFound) {
		t.Error("failed fetch was cached")
	}
	if n, _ := kv.CountPrefix(kvstore.PrefixArtifact); n != 1 {
		t.Errorf("cached artifacts = %d, want 1", n)
	}
}

func TestCachedSource_HubRevisionChangesKey(t *testing.T) {
	t.Parallel()

	kv, err := kvstore.Open("")
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	var calls atomic.Int32
	next := SourceFunc(func(_ context.Context, ref string) ([]byte, error) {
		calls.Add(1)
		return []byte("payload"), nil
	})
	ctx := context.Background()
	const ref = "hf://o/r/similarity.simm"

	for _, revision := range []string{"main", "main", "v2"} {
		hub := NewHTTPSource(nil, config.HuggingFaceConfig{Revision: revision})
		if _, err := NewCachedSource(next, kv, hub.CacheKey).Fetch(ctx, ref); err != nil {
			t.Fatalf("Fetch at %s: %v", revision, err)
		}
	}
	if calls.Load() != 2 {
		t.Errorf("upstream calls = %d, want 2 (one per revision)", calls.Load())
	}

	v2 := NewHTTPSource(nil, config.HuggingFaceConfig{Revision: "v2"})
	if _, err := kv.Get(kvstore.PrefixArtifact + v2.CacheKey(ref)); err != nil {
		t.Errorf("v2 entry missing: %v", err)
	}
	if v2.CacheKey("hf://broken") != "hf://broken" {
		t.Error("unresolvable reference should key on itself")
	}
}
