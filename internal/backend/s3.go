package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/quillpad/mediastore/internal/config"
	"github.com/quillpad/mediastore/internal/domain"
)

// S3Backend stores uploads in an S3-compatible bucket using AWS SDK v2.
// A custom endpoint switches the client to path-style addressing, which
// SeaweedFS and MinIO require.
type S3Backend struct {
	client    *s3.Client
	bucket    string
	publicURL string
	pathStyle bool
}

// NewS3Backend creates the S3 client and makes sure the bucket exists.
func NewS3Backend(ctx context.Context, cfg appConfig.S3Config) (*S3Backend, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.Endpoint
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	b := &S3Backend{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		pathStyle: cfg.Endpoint != "",
	}

	if err := b.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

// SaveFile uploads the object under its id and returns the public URL.
func (b *S3Backend) SaveFile(ctx context.Context, file []byte, id string) (string, domain.BackendLocator, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(id),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(http.DetectContentType(file)),
	})
	if err != nil {
		return "", domain.BackendLocator{}, &domain.BackendError{Backend: domain.BackendS3, Op: "save", Err: err}
	}

	locator := domain.BackendLocator{
		S3: &domain.S3Locator{Bucket: b.bucket, Key: id},
	}
	return b.objectURL(id), locator, nil
}

// DeleteFile removes the object named by the locator.
func (b *S3Backend) DeleteFile(ctx context.Context, id string, locator domain.BackendLocator) error {
	if locator.S3 == nil {
		return &domain.BackendError{
			Backend: domain.BackendS3,
			Op:      "delete",
			Err:     fmt.Errorf("locator for %s has no s3 variant", id),
		}
	}
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(locator.S3.Bucket),
		Key:    aws.String(locator.S3.Key),
	})
	if err != nil {
		return &domain.BackendError{Backend: domain.BackendS3, Op: "delete", Err: err}
	}
	return nil
}

func (b *S3Backend) Type() domain.BackendType {
	return domain.BackendS3
}

func (b *S3Backend) objectURL(key string) string {
	if b.pathStyle {
		// Format: {Endpoint}/{Bucket}/{Key}
		return fmt.Sprintf("%s/%s/%s", b.publicURL, b.bucket, key)
	}
	return fmt.Sprintf("%s/%s", b.publicURL, key)
}

// ensureBucket checks if bucket exists, creating it if necessary
func (b *S3Backend) ensureBucket(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err != nil {
		_, err = b.client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(b.bucket),
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", b.bucket, err)
		}
	}
	return nil
}
