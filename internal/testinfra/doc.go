// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package testinfra provides container helpers for integration tests.
//
// It uses testcontainers-go to run real backing services, so tests exercise
// the actual wire protocol instead of a mock. Everything here is behind the
// integration build tag:
//
//	go test -tags integration ./...
//
// # MinIO Container
//
//	func TestMinIOArtifacts(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mc, err := testinfra.NewMinIOContainer(ctx, testinfra.WithBuckets("artifacts"))
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mc)
//
//	    src, err := artifact.NewMinIOSource(mc.Config())
//	    // ...
//	}
//
// Tests are skipped when Docker is unavailable. The first run downloads the
// image.
package testinfra
