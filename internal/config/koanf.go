// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file location.
const DotEnvPathEnvVar = "DOTENV_PATH"

// Defaults returns the built-in configuration without reading any source.
func Defaults() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8501,
			Timeout:     30 * time.Second,
			Environment: "production",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Artifacts: ArtifactsConfig{
			CatalogRef:    "data/movies.json",
			SimilarityRef: "data/similarity.simm",
			Timeout:       5 * time.Minute,
			RetryAttempts: 3,
			RetryDelay:    2 * time.Second,
			CacheEnabled:  true,
			HuggingFace: HuggingFaceConfig{
				Endpoint: "https://huggingface.co",
				Revision: "main",
			},
			S3: S3Config{
				Enabled: false,
				Region:  "us-east-1",
			},
		},
		Storage: StorageConfig{
			Path: "/data/reelmatch",
		},
		Recommend: RecommendConfig{
			DefaultK:      5,
			MaxK:          50,
			Exclusion:     "identity",
			HeapThreshold: 2048,
			CacheSize:     1024,
			CacheTTL:      10 * time.Minute,
		},
		Poster: PosterConfig{
			Enabled:      true,
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Language:     "en-US",
			Timeout:      10 * time.Second,
			RateLimit:    20,
			Burst:        10,
			CacheSize:    4096,
			CacheTTL:     24 * time.Hour,
			Concurrency:  5,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources.
// Precedence is ENV > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads variables from a .env file into the process environment.
// Variables already set are not overridden, and a missing file is ignored.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":      "server.host",
	"http_port":      "server.port",
	"server_timeout": "server.timeout",
	"environment":    "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Artifacts
	"catalog_ref":             "artifacts.catalog_ref",
	"similarity_ref":          "artifacts.similarity_ref",
	"artifact_timeout":        "artifacts.timeout",
	"artifact_retry_attempts": "artifacts.retry_attempts",
	"artifact_retry_delay":    "artifacts.retry_delay",
	"artifact_cache_enabled":  "artifacts.cache_enabled",
	"hf_endpoint":             "artifacts.huggingface.endpoint",
	"hf_revision":             "artifacts.huggingface.revision",
	"hf_token":                "artifacts.huggingface.token",
	"s3_enabled":              "artifacts.s3.enabled",
	"aws_region":              "artifacts.s3.region",
	"s3_endpoint":             "artifacts.s3.endpoint",
	"s3_use_path_style":       "artifacts.s3.use_path_style",
	"minio_endpoint":          "artifacts.minio.endpoint",
	"minio_access_key":        "artifacts.minio.access_key",
	"minio_secret_key":        "artifacts.minio.secret_key",
	"minio_use_ssl":           "artifacts.minio.use_ssl",

	// Storage
	"storage_path": "storage.path",

	// Recommendation engine
	"recommend_default_k":      "recommend.default_k",
	"recommend_max_k":          "recommend.max_k",
	"recommend_exclusion":      "recommend.exclusion",
	"recommend_heap_threshold": "recommend.heap_threshold",
	"recommend_cache_size":     "recommend.cache_size",
	"recommend_cache_ttl":      "recommend.cache_ttl",

	// Posters
	"poster_enabled":      "poster.enabled",
	"tmdb_api_key":        "poster.api_key",
	"tmdb_base_url":       "poster.base_url",
	"tmdb_image_base_url": "poster.image_base_url",
	"tmdb_language":       "poster.language",
	"poster_timeout":      "poster.timeout",
	"poster_rate_limit":   "poster.rate_limit",
	"poster_burst":        "poster.burst",
	"poster_cache_size":   "poster.cache_size",
	"poster_cache_ttl":    "poster.cache_ttl",
	"poster_concurrency":  "poster.concurrency",

	// Security
	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",
	"cors_origins":       "security.cors_origins",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - TMDB_API_KEY -> poster.api_key
//   - SIMILARITY_REF -> artifacts.similarity_ref
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile calls callback whenever the file at path changes.
// The caller is responsible for synchronizing access to reloaded values.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}

// ConfigFilePath returns the config file LoadWithKoanf would read, if any.
func ConfigFilePath() string {
	return findConfigFile()
}
