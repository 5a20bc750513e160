package s3

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/adrianliechti/narrator/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var _ storage.Provider = (*Bucket)(nil)

// Bucket writes objects to an S3 compatible bucket (AWS S3, Cloudflare R2, ...).
type Bucket struct {
	*Config

	client *s3.Client
}

type Config struct {
	url    string
	region string
	bucket string

	accessKey string
	secretKey string

	client *http.Client
}

type Option func(*Config)

func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

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

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func New(bucket string, options ...Option) (*Bucket, error) {
	if bucket == "" {
		return nil, errors.New("bucket is required")
	}

	cfg := &Config{
		bucket: bucket,
	}

	for _, option := range options {
		option(cfg)
	}

	var loadOptions []func(*config.LoadOptions) error

	if cfg.region != "" {
		loadOptions = append(loadOptions, config.WithRegion(cfg.region))
	}

	if cfg.accessKey != "" {
		loadOptions = append(loadOptions, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.accessKey, cfg.secretKey, "")))
	}

	if cfg.client != nil {
		loadOptions = append(loadOptions, config.WithHTTPClient(cfg.client))
	}

	awsConfig, err := config.LoadDefaultConfig(context.Background(), loadOptions...)

	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.url != "" {
			o.BaseEndpoint = aws.String(cfg.url)
			o.UsePathStyle = true
		}
	})

	return &Bucket{
		Config: cfg,
		client: client,
	}, nil
}

func (b *Bucket) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),

		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})

	return err
}
