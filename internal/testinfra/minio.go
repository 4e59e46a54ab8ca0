// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/reelmatch/internal/config"
)

const (
	// DefaultMinIOImage is the MinIO server image used for tests.
	DefaultMinIOImage = "minio/minio:RELEASE.2024-01-16T16-07-38Z"

	// DefaultMinIOPort is the S3 API port inside the container.
	DefaultMinIOPort = "9000"

	// DefaultAccessKey and DefaultSecretKey are the root credentials.
	DefaultAccessKey = "reelmatch"
	DefaultSecretKey = "reelmatch-secret"
)

// MinIOContainer is a running MinIO server.
type MinIOContainer struct {
	testcontainers.Container

	// Endpoint is host:port of the S3 API.
	Endpoint  string
	AccessKey string
	SecretKey string
}

// MinIOOption configures the MinIO container.
type MinIOOption func(*minioConfig)

type minioConfig struct {
	image        string
	buckets      []string
	startTimeout time.Duration
}

// WithMinIOImage sets a custom MinIO image.
func WithMinIOImage(image string) MinIOOption {
	return func(c *minioConfig) {
		c.image = image
	}
}

// WithBuckets creates the named buckets once the server is up.
func WithBuckets(buckets ...string) MinIOOption {
	return func(c *minioConfig) {
		c.buckets = append(c.buckets, buckets...)
	}
}

// WithStartTimeout sets the timeout for waiting for MinIO to start.
func WithStartTimeout(timeout time.Duration) MinIOOption {
	return func(c *minioConfig) {
		c.startTimeout = timeout
	}
}

// NewMinIOContainer creates and starts a MinIO server.
func NewMinIOContainer(ctx context.Context, opts ...MinIOOption) (*MinIOContainer, error) {
	cfg := &minioConfig{
		image:        DefaultMinIOImage,
		startTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultMinIOPort + "/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     DefaultAccessKey,
			"MINIO_ROOT_PASSWORD": DefaultSecretKey,
		},
		Cmd: []string{"server", "/data"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(DefaultMinIOPort+"/tcp"),
			wait.ForHTTP("/minio/health/live").WithPort(DefaultMinIOPort+"/tcp"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, DefaultMinIOPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	mc := &MinIOContainer{
		Container: container,
		Endpoint:  fmt.Sprintf("%s:%s", host, port.Port()),
		AccessKey: DefaultAccessKey,
		SecretKey: DefaultSecretKey,
	}

	if len(cfg.buckets) > 0 {
		if err := mc.createBuckets(ctx, cfg.buckets); err != nil {
			container.Terminate(ctx) //nolint:errcheck
			return nil, err
		}
	}
	return mc, nil
}

// Config returns a MinIO configuration pointing at the container.
func (c *MinIOContainer) Config() config.MinIOConfig {
	return config.MinIOConfig{
		Endpoint:  c.Endpoint,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
	}
}

// Client returns a fresh client for seeding objects.
func (c *MinIOContainer) Client() (*minio.Client, error) {
	return minio.New(c.Endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
	})
}

func (c *MinIOContainer) createBuckets(ctx context.Context, buckets []string) error {
	client, err := c.Client()
	if err != nil {
		return fmt.Errorf("create minio client: %w", err)
	}
	for _, b := range buckets {
		if err := client.MakeBucket(ctx, b, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket %s: %w", b, err)
		}
	}
	return nil
}
