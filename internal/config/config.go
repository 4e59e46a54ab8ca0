// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Storage   StorageConfig   `koanf:"storage"`
	Recommend RecommendConfig `koanf:"recommend"`
	Poster    PosterConfig    `koanf:"poster"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Environment string        `koanf:"environment" validate:"oneof=development production test"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// ArtifactsConfig locates the catalog and similarity matrix.
type ArtifactsConfig struct {
	CatalogRef    string            `koanf:"catalog_ref" validate:"required"`
	SimilarityRef string            `koanf:"similarity_ref" validate:"required"`
	Timeout       time.Duration     `koanf:"timeout" validate:"gte=0"`
	RetryAttempts int               `koanf:"retry_attempts" validate:"min=1,max=10"`
	RetryDelay    time.Duration     `koanf:"retry_delay" validate:"gte=0"`
	CacheEnabled  bool              `koanf:"cache_enabled"`
	HuggingFace   HuggingFaceConfig `koanf:"huggingface"`
	S3            S3Config          `koanf:"s3"`
	MinIO         MinIOConfig       `koanf:"minio"`
}

// HuggingFaceConfig configures hf:// references.
type HuggingFaceConfig struct {
	Endpoint string `koanf:"endpoint"`
	Revision string `koanf:"revision"`
	Token    string `koanf:"token"`
}

// S3Config configures s3:// references. Credentials come from the default
// AWS chain.
type S3Config struct {
	Enabled      bool   `koanf:"enabled"`
	Region       string `koanf:"region"`
	Endpoint     string `koanf:"endpoint"`
	UsePathStyle bool   `koanf:"use_path_style"`
}

// MinIOConfig configures minio:// references. An empty endpoint disables them.
type MinIOConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	UseSSL    bool   `koanf:"use_ssl"`
}

// StorageConfig locates the BadgerDB directory used by the artifact and
// poster caches. An empty path keeps the caches in memory.
type StorageConfig struct {
	Path string `koanf:"path"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	DefaultK      int           `koanf:"default_k" validate:"min=1"`
	MaxK          int           `koanf:"max_k" validate:"min=1,max=1000"`
	Exclusion     string        `koanf:"exclusion" validate:"oneof=identity first_rank"`
	HeapThreshold int           `koanf:"heap_threshold" validate:"gte=0"`
	CacheSize     int           `koanf:"cache_size" validate:"gte=0"`
	CacheTTL      time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// PosterConfig configures the TMDB poster lookup.
type PosterConfig struct {
	Enabled      bool          `koanf:"enabled"`
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	Language     string        `koanf:"language"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimit    float64       `koanf:"rate_limit" validate:"gt=0"`
	Burst        int           `koanf:"burst" validate:"min=1"`
	CacheSize    int           `koanf:"cache_size" validate:"gte=0"`
	CacheTTL     time.Duration `koanf:"cache_ttl" validate:"gte=0"`
	Concurrency  int           `koanf:"concurrency" validate:"min=1,max=64"`
}

// SecurityConfig holds inbound protection settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// Load reads configuration from defaults, an optional YAML file, a .env
// file and the environment, in increasing priority.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadWithKoanf()
}
