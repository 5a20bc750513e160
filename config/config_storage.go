package config

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/adrianliechti/narrator/pkg/otel"
	"github.com/adrianliechti/narrator/pkg/storage"
	"github.com/adrianliechti/narrator/pkg/storage/file"
	"github.com/adrianliechti/narrator/pkg/storage/minio"
	"github.com/adrianliechti/narrator/pkg/storage/s3"
)

type storageConfig struct {
	Type string `yaml:"type"`

	URL    string `yaml:"url"`
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`

	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	Insecure bool `yaml:"insecure"`

	Path string `yaml:"path"`

	PublicDomain string `yaml:"public_domain"`
}

func (c *Config) registerStorage(f *configFile) error {
	if f.Storage == nil {
		return nil
	}

	s, err := c.createStorage(*f.Storage)

	if err != nil {
		return err
	}

	c.Storage = otel.NewStorage(strings.ToLower(f.Storage.Type), s)
	c.PublicDomain = f.Storage.PublicDomain

	return nil
}

func (c *Config) createStorage(cfg storageConfig) (storage.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "s3", "r2":
		return c.s3Storage(cfg)

	case "minio":
		return c.minioStorage(cfg)

	case "file":
		return file.New(cfg.Path)

	default:
		return nil, errors.New("invalid storage type: " + cfg.Type)
	}
}

func (c *Config) s3Storage(cfg storageConfig) (storage.Provider, error) {
	var options []s3.Option

	if cfg.URL != "" {
		options = append(options, s3.WithURL(cfg.URL))
	}

	if cfg.Region != "" {
		options = append(options, s3.WithRegion(cfg.Region))
	}

	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		options = append(options, s3.WithCredentials(cfg.AccessKey, cfg.SecretKey))
	}

	if c.client != nil {
		options = append(options, s3.WithClient(c.client))
	}

	return s3.New(cfg.Bucket, options...)
}

func (c *Config) minioStorage(cfg storageConfig) (storage.Provider, error) {
	var options []minio.Option

	if cfg.Region != "" {
		options = append(options, minio.WithRegion(cfg.Region))
	}

	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		options = append(options, minio.WithCredentials(cfg.AccessKey, cfg.SecretKey))
	}

	endpoint := cfg.URL

	if u, err := url.Parse(cfg.URL); err == nil && u.Host != "" {
		endpoint = u.Host

		if u.Scheme == "http" {
			cfg.Insecure = true
		}
	}

	if cfg.Insecure {
		options = append(options, minio.WithInsecure())
	}

	if c.client != nil && c.client.Transport != nil {
		options = append(options, minio.WithTransport(c.client.Transport))
	}

	b, err := minio.New(endpoint, cfg.Bucket, options...)

	if err != nil {
		return nil, err
	}

	if err := b.EnsureBucket(context.Background()); err != nil {
		return nil, err
	}

	return b, nil
}
