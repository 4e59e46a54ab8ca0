// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompression_WithGzipAccept(t *testing.T) {
	t.Parallel()

	body := strings.Repeat(`{"title":"Avatar"}`, 200)
	handler := Compression(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "3600")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}
	if rec.Header().Get("Content-Length") != "" {
		t.Error("Content-Length should be removed")
	}

	reader, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(decompressed) != body {
		t.Error("decompressed body does not match")
	}
}

func TestCompression_Passthrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		encoding string
	}{
		{name: "no accept-encoding", method: http.MethodGet},
		{name: "other encoding", method: http.MethodGet, encoding: "br"},
		{name: "head request", method: http.MethodHead, encoding: "gzip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := Compression(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("plain"))
			})

			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.encoding != "" {
				req.Header.Set("Accept-Encoding", tt.encoding)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Header().Get("Content-Encoding") != "" {
				t.Errorf("unexpected Content-Encoding %q", rec.Header().Get("Content-Encoding"))
			}
			if tt.method == http.MethodGet && rec.Body.String() != "plain" {
				t.Errorf("body = %q, want plain", rec.Body.String())
			}
		})
	}
}
