// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tomtom215/reelmatch/internal/config"
)

const (
	defaultHFEndpoint = "https://huggingface.co"
	defaultHFRevision = "main"
	userAgent         = "reelmatch/1.0"
)

// HTTPSource fetches http(s):// references and hf:// references through the
// Hugging Face Hub resolve endpoint.
type HTTPSource struct {
	client     *http.Client
	hfEndpoint string
	hfRevision string
	hfToken    string
}

// NewHTTPSource creates an HTTPSource. A nil client uses http.DefaultClient.
func NewHTTPSource(client *http.Client, hf config.HuggingFaceConfig) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	s := &HTTPSource{
		client:     client,
		hfEndpoint: strings.TrimRight(hf.Endpoint, "/"),
		hfRevision: hf.Revision,
		hfToken:    hf.Token,
	}
	if s.hfEndpoint == "" {
		s.hfEndpoint = defaultHFEndpoint
	}
	if s.hfRevision == "" {
		s.hfRevision = defaultHFRevision
	}
	return s
}

// ResolveURL maps ref to the URL to download and reports whether the Hub
// token applies.
func (s *HTTPSource) ResolveURL(ref string) (string, bool, error) {
	if Scheme(ref) != "hf" {
		return ref, false, nil
	}
	// hf://owner/repo/path/to/file
	parts := strings.SplitN(strings.TrimPrefix(ref, "hf://"), "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", false, fmt.Errorf("reference %q must have the form hf://owner/repo/path", ref)
	}
	url := fmt.Sprintf("%s/%s/%s/resolve/%s/%s", s.hfEndpoint, parts[0], parts[1], s.hfRevision, parts[2])
	return url, true, nil
}

// CacheKey identifies the content behind ref. Hub references resolve against
// the configured revision, so the resolved URL is used.
func (s *HTTPSource) CacheKey(ref string) string {
	url, _, err := s.ResolveURL(ref)
	if err != nil {
		return ref
	}
	return url
}

// Fetch downloads ref.
func (s *HTTPSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	url, hub, err := s.ResolveURL(ref)
	if err != nil {
		return nil, permanent(ref, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, permanent(ref, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if hub && s.hfToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.hfToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, transient(ref, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFound(ref, fmt.Errorf("HTTP %d", resp.StatusCode))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, transient(ref, fmt.Errorf("HTTP %d", resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, permanent(ref, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxArtifactBytes+1))
	if err != nil {
		return nil, transient(ref, fmt.Errorf("read body: %w", err))
	}
	if len(data) > MaxArtifactBytes {
		return nil, permanent(ref, fmt.Errorf("artifact exceeds %d bytes", MaxArtifactBytes))
	}
	return data, nil
}
