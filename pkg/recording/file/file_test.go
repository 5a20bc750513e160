package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/narrator/pkg/recording"
	"github.com/adrianliechti/narrator/pkg/recording/file"

	"github.com/stretchr/testify/require"
)

func TestPersistence(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "state", "recordings.json")

	p, err := file.New(path)
	require.NoError(t, err)

	data, err := p.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, data)

	require.NoError(t, p.Write(ctx, []byte(`[{"id":"a"}]`)))

	data, err = p.Read(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"a"}]`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "recordings.json")

	p, err := file.New(path)
	require.NoError(t, err)

	s := recording.New(p)
	s.Add(ctx, recording.Entry{Text: "Hello world", AudioURL: "https://cdn.example/generated-audio/1.mp3", LatencyMs: 120})
	s.Add(ctx, recording.Entry{Text: "Second", AudioURL: "https://cdn.example/generated-audio/2.mp3", LatencyMs: 80})

	reloaded := recording.New(p)
	reloaded.Load(ctx)

	require.Equal(t, s.List(), reloaded.List())
}

func TestMalformedFile(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "recordings.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	p, err := file.New(path)
	require.NoError(t, err)

	s := recording.New(p)
	s.Load(ctx)

	require.Empty(t, s.List())
}
