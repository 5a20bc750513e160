package redis

import (
	"context"
	"errors"

	"github.com/adrianliechti/narrator/pkg/recording"

	"github.com/redis/go-redis/v9"
)

var _ recording.Persistence = (*Persistence)(nil)

// Persistence keeps the recordings list under a single Redis key.
type Persistence struct {
	*Config

	client *redis.Client
}

type Config struct {
	key string
}

type Option func(*Config)

func WithKey(key string) Option {
	return func(c *Config) {
		c.key = key
	}
}

func New(url string, options ...Option) (*Persistence, error) {
	opts, err := redis.ParseURL(url)

	if err != nil {
		return nil, err
	}

	return NewFromClient(redis.NewClient(opts), options...), nil
}

func NewFromClient(client *redis.Client, options ...Option) *Persistence {
	cfg := &Config{
		key: "recordings",
	}

	for _, option := range options {
		option(cfg)
	}

	return &Persistence{
		Config: cfg,

		client: client,
	}
}

func (p *Persistence) Close() error {
	return p.client.Close()
}

func (p *Persistence) Read(ctx context.Context) ([]byte, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	return data, err
}

func (p *Persistence) Write(ctx context.Context, data []byte) error {
	return p.client.Set(ctx, p.key, data, 0).Err()
}
