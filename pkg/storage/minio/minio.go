package minio

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/adrianliechti/narrator/pkg/storage"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ storage.Provider = (*Bucket)(nil)

type Bucket struct {
	*Config

	client *minio.Client
}

type Config struct {
	endpoint string
	bucket   string
	region   string

	accessKey string
	secretKey string

	insecure bool

	transport http.RoundTripper
}

type Option func(*Config)

func WithRegion(region string) Option {
	return func(c *Config) {
		c.region = region
	}
}

func WithCredentials(accessKey, secretKey string) Option {
	return func(c *Config) {
		c.accessKey = accessKey
		c.secretKey = secretKey
	}
}

func WithInsecure() Option {
	return func(c *Config) {
		c.insecure = true
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(c *Config) {
		c.transport = transport
	}
}

func New(endpoint, bucket string, options ...Option) (*Bucket, error) {
	if endpoint == "" {
		return nil, errors.New("endpoint is required")
	}

	if bucket == "" {
		return nil, errors.New("bucket is required")
	}

	cfg := &Config{
		endpoint: endpoint,
		bucket:   bucket,
	}

	for _, option := range options {
		option(cfg)
	}

	client, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretKey, ""),
		Secure: !cfg.insecure,
		Region: cfg.region,

		Transport: cfg.transport,
	})

	if err != nil {
		return nil, err
	}

	return &Bucket{
		Config: cfg,
		client: client,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (b *Bucket) EnsureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)

	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{
		Region: b.region,
	})
}

func (b *Bucket) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,

		UserMetadata: map[string]string{
			"generated-at": time.Now().UTC().Format(time.RFC3339),
		},
	})

	return err
}
