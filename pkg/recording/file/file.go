package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrianliechti/narrator/pkg/recording"

	"github.com/google/renameio/v2"
)

var _ recording.Persistence = (*Persistence)(nil)

// Persistence keeps the recordings list in a single JSON file.
type Persistence struct {
	path string
}

func New(path string) (*Persistence, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	return &Persistence{
		path: path,
	}, nil
}

func (p *Persistence) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(p.path)

	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	return data, err
}

func (p *Persistence) Write(ctx context.Context, data []byte) error {
	return renameio.WriteFile(p.path, data, 0o600)
}
