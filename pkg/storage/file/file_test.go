package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/narrator/pkg/storage/file"

	"github.com/stretchr/testify/require"
)

func TestPut(t *testing.T) {
	root := t.TempDir()

	b, err := file.New(root)
	require.NoError(t, err)

	err = b.Put(context.Background(), "generated-audio/abc.mp3", []byte("mp3-bytes"), "audio/mpeg")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "generated-audio", "abc.mp3"))
	require.NoError(t, err)
	require.Equal(t, []byte("mp3-bytes"), data)
}

func TestPutRejectsTraversal(t *testing.T) {
	b, err := file.New(t.TempDir())
	require.NoError(t, err)

	require.Error(t, b.Put(context.Background(), "../escape.mp3", nil, "audio/mpeg"))
	require.Error(t, b.Put(context.Background(), "", nil, "audio/mpeg"))
}
