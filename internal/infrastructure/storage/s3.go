package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	mediaapp "github.com/portfolio/backend/internal/application/media"
	infraconfig "github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3BlobStorage implements BlobStorage
var _ mediaapp.BlobStorage = (*S3BlobStorage)(nil)

// S3BlobStorage stores media blobs on any S3-compatible host (AWS S3, MinIO,
// RustFS, etc.) and returns publicly resolvable object URLs.
type S3BlobStorage struct {
	client        *s3.Client
	bucket        string
	keyPrefix     string
	publicBaseURL string
	logger        *zap.Logger
}

// S3BlobStorageOption is a functional option for configuring S3BlobStorage
type S3BlobStorageOption func(*S3BlobStorage)

// WithLogger sets a custom logger for S3BlobStorage
func WithLogger(logger *zap.Logger) S3BlobStorageOption {
	return func(s *S3BlobStorage) {
		s.logger = logger
	}
}

// WithKeyPrefix stores all blobs under the given key prefix
func WithKeyPrefix(prefix string) S3BlobStorageOption {
	return func(s *S3BlobStorage) {
		s.keyPrefix = strings.Trim(prefix, "/")
	}
}

// NewS3BlobStorage creates a new S3BlobStorage from configuration.
func NewS3BlobStorage(cfg *infraconfig.MediaConfig, opts ...S3BlobStorageOption) (*S3BlobStorage, error) {
	if cfg == nil {
		return nil, errors.New("media configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("media bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("media access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("media secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid media endpoint: %w", err)
		}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	storage := &S3BlobStorage{
		client:        client,
		bucket:        cfg.Bucket,
		keyPrefix:     "portfolio-media",
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        zap.NewNop(),
	}
	if storage.publicBaseURL == "" && endpoint != "" {
		// Path-style default; overridable via media.public_base_url for CDN fronts.
		storage.publicBaseURL = strings.TrimSuffix(endpoint, "/") + "/" + cfg.Bucket
	}

	for _, opt := range opts {
		opt(storage)
	}

	return storage, nil
}

// Put implements mediaapp.BlobStorage
func (s *S3BlobStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	objectKey := key
	if s.keyPrefix != "" {
		objectKey = s.keyPrefix + "/" + key
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	s.logger.Debug("uploaded blob",
		zap.String("bucket", s.bucket),
		zap.String("key", objectKey),
		zap.Int("bytes", len(data)),
	)

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + objectKey, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.clientRegion(), objectKey), nil
}

func (s *S3BlobStorage) clientRegion() string {
	return s.client.Options().Region
}

// GetBucket returns the bucket name
func (s *S3BlobStorage) GetBucket() string {
	return s.bucket
}
