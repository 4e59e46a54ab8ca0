// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package artifact fetches, decompresses and decodes the catalog and
// similarity matrix artifacts the store is built from.
//
// References are URLs whose scheme selects the Source:
//
//	data/movies.json                      local file
//	file:///srv/reelmatch/similarity.simm local file
//	https://example.com/movies.json       HTTP(S)
//	hf://owner/repo/movies.json.zst       Hugging Face Hub resolve URL
//	s3://bucket/key                       Amazon S3 (aws-sdk-go-v2)
//	minio://bucket/key                    MinIO or another S3-compatible store
package artifact

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFetch matches every artifact retrieval failure.
	ErrFetch = errors.New("artifact fetch failed")
	// ErrNotFound additionally matches failures where the artifact is absent.
	ErrNotFound = errors.New("artifact not found")
)

// MaxArtifactBytes bounds a single artifact read.
const MaxArtifactBytes = 2 << 30

// Source retrieves raw artifact bytes by reference.
type Source interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, ref string) ([]byte, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, ref string) ([]byte, error) {
	return f(ctx, ref)
}

// FetchError describes a failed fetch.
type FetchError struct {
	Ref string
	Err error
	// NotFound marks a missing artifact.
	NotFound bool
	// Permanent marks a failure retrying cannot fix (4xx, bad reference).
	Permanent bool
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches ErrFetch always and ErrNotFound for missing artifacts.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch || (e.NotFound && target == ErrNotFound)
}

func notFound(ref string, err error) error {
	return &FetchError{Ref: ref, Err: err, NotFound: true, Permanent: true}
}

func permanent(ref string, err error) error {
	return &FetchError{Ref: ref, Err: err, Permanent: true}
}

func transient(ref string, err error) error {
	return &FetchError{Ref: ref, Err: err}
}

// Retryable reports whether another attempt at the fetch could succeed.
func Retryable(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return !fe.Permanent
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Scheme returns the lowercased scheme of ref, or "file" for plain paths.
func Scheme(ref string) string {
	if i := strings.Index(ref, "://"); i > 0 {
		return strings.ToLower(ref[:i])
	}
	return "file"
}

// splitBucketKey parses "scheme://bucket/key/parts".
func splitBucketKey(ref string) (bucket, key string, err error) {
	rest := ref
	if i := strings.Index(ref, "://"); i >= 0 {
		rest = ref[i+3:]
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("reference %q must have the form scheme://bucket/key", ref)
	}
	return bucket, key, nil
}
