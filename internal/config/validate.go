// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateArtifacts(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	return c.validatePoster()
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is invalid (use trace, debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}

var knownSchemes = map[string]bool{
	"file": true, "http": true, "https": true, "hf": true, "s3": true, "minio": true,
}

func (c *Config) validateArtifacts() error {
	for name, ref := range map[string]string{
		"CATALOG_REF":    c.Artifacts.CatalogRef,
		"SIMILARITY_REF": c.Artifacts.SimilarityRef,
	} {
		scheme := "file"
		if i := strings.Index(ref, "://"); i > 0 {
			scheme = strings.ToLower(ref[:i])
		}
		if !knownSchemes[scheme] {
			return fmt.Errorf("%s has unsupported scheme %q", name, scheme)
		}
		if scheme == "s3" && !c.Artifacts.S3.Enabled {
			return fmt.Errorf("%s uses s3:// but S3_ENABLED is false", name)
		}
		if scheme == "minio" && c.Artifacts.MinIO.Endpoint == "" {
			return fmt.Errorf("%s uses minio:// but MINIO_ENDPOINT is not set", name)
		}
	}

	if c.Artifacts.HuggingFace.Endpoint != "" {
		if err := validateHTTPURL(c.Artifacts.HuggingFace.Endpoint, "HF_ENDPOINT"); err != nil {
			return err
		}
	}
	if c.Artifacts.S3.Endpoint != "" {
		if err := validateHTTPURL(c.Artifacts.S3.Endpoint, "S3_ENDPOINT"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultK > c.Recommend.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K (%d) must not exceed RECOMMEND_MAX_K (%d)",
			c.Recommend.DefaultK, c.Recommend.MaxK)
	}
	if c.Recommend.CacheSize > 0 && c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when RECOMMEND_CACHE_SIZE is set, got %s",
			c.Recommend.CacheTTL)
	}
	return nil
}

func (c *Config) validatePoster() error {
	if !c.Poster.Enabled {
		return nil
	}
	// The poster cache spans both the LRU and the key-value store; a zero
	// TTL would mean five minutes in one and forever in the other.
	if c.Poster.CacheTTL <= 0 {
		return fmt.Errorf("POSTER_CACHE_TTL must be positive, got %s", c.Poster.CacheTTL)
	}
	if err := validateHTTPURL(c.Poster.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	return validateHTTPURL(c.Poster.ImageBaseURL, "TMDB_IMAGE_BASE_URL")
}

// validateHTTPURL checks for an http or https URL with a host and no query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return errors.New(fieldName + " host is required")
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
