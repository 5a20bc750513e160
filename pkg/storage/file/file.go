package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/narrator/pkg/storage"

	"github.com/google/renameio/v2"
)

var _ storage.Provider = (*Bucket)(nil)

// Bucket stores objects as files below a root directory.
type Bucket struct {
	root string
}

func New(root string) (*Bucket, error) {
	if root == "" {
		return nil, errors.New("root directory is required")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}

	return &Bucket{
		root: root,
	}, nil
}

func (b *Bucket) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path, err := b.path(key)

	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return renameio.WriteFile(path, data, 0o644)
}

func (b *Bucket) path(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))

	if clean == string(filepath.Separator) || strings.Contains(key, "..") {
		return "", errors.New("invalid object key")
	}

	return filepath.Join(b.root, clean), nil
}
