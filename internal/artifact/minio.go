// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tomtom215/reelmatch/internal/config"
)

// MinIOSource fetches minio://bucket/key references from an S3-compatible
// endpoint.
type MinIOSource struct {
	client *minio.Client
}

// NewMinIOSource connects to the configured endpoint.
func NewMinIOSource(cfg config.MinIOConfig) (*MinIOSource, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", cfg.Endpoint, err)
	}
	return &MinIOSource{client: client}, nil
}

// Client exposes the underlying client.
func (s *MinIOSource) Client() *minio.Client {
	return s.client
}

// Fetch downloads the object named by ref.
func (s *MinIOSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := splitBucketKey(ref)
	if err != nil {
		return nil, permanent(ref, err)
	}

	info, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, classifyMinIOError(ref, err)
	}
	if info.Size > MaxArtifactBytes {
		return nil, permanent(ref, fmt.Errorf("object is %d bytes, limit is %d", info.Size, MaxArtifactBytes))
	}

	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classifyMinIOError(ref, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, classifyMinIOError(ref, err)
	}
	return data, nil
}

func classifyMinIOError(ref string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return notFound(ref, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return permanent(ref, err)
	default:
		return transient(ref, err)
	}
}
