package badger

import (
	"context"
	"errors"

	"github.com/adrianliechti/narrator/pkg/recording"

	"github.com/dgraph-io/badger/v4"
)

var _ recording.Persistence = (*Persistence)(nil)

// Persistence keeps the recordings list under a single key of an embedded badger database.
type Persistence struct {
	*Config

	db *badger.DB
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

func New(path string, options ...Option) (*Persistence, error) {
	cfg := &Config{
		key: "recordings",
	}

	for _, option := range options {
		option(cfg)
	}

	opts := badger.DefaultOptions(path).WithLogger(nil)

	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)

	if err != nil {
		return nil, err
	}

	return &Persistence{
		Config: cfg,

		db: db,
	}, nil
}

func (p *Persistence) Close() error {
	return p.db.Close()
}

func (p *Persistence) Read(ctx context.Context) ([]byte, error) {
	var data []byte

	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(p.key))

		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}

	return data, err
}

func (p *Persistence) Write(ctx context.Context, data []byte) error {
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(p.key), data)
	})
}
