// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tomtom215/reelmatch/internal/config"
)

// S3API is the subset of *s3.Client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source fetches s3://bucket/key references.
type S3Source struct {
	client S3API
}

// NewS3Source wraps an existing client.
func NewS3Source(client S3API) *S3Source {
	return &S3Source{client: client}
}

// NewS3SourceFromConfig builds a client from the default AWS credential chain.
func NewS3SourceFromConfig(ctx context.Context, cfg config.S3Config) (*S3Source, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewS3Source(client), nil
}

// Fetch downloads the object named by ref.
func (s *S3Source) Fetch(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := splitBucketKey(ref)
	if err != nil {
		return nil, permanent(ref, err)
	}

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, notFound(ref, err)
		}
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, notFound(ref, err)
		}
		var nb *types.NoSuchBucket
		if errors.As(err, &nb) {
			return nil, notFound(ref, err)
		}
		return nil, transient(ref, err)
	}
	defer resp.Body.Close()

	if resp.ContentLength != nil && *resp.ContentLength > MaxArtifactBytes {
		return nil, permanent(ref, fmt.Errorf("object is %d bytes, limit is %d", *resp.ContentLength, MaxArtifactBytes))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxArtifactBytes+1))
	if err != nil {
		return nil, transient(ref, fmt.Errorf("read object: %w", err))
	}
	if len(data) > MaxArtifactBytes {
		return nil, permanent(ref, fmt.Errorf("object exceeds %d bytes", MaxArtifactBytes))
	}
	return data, nil
}
