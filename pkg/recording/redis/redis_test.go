package redis_test

import (
	"context"
	"testing"

	"github.com/adrianliechti/narrator/pkg/recording"
	"github.com/adrianliechti/narrator/pkg/recording/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Persistence) {
	t.Helper()

	mr := miniredis.RunT(t)

	p, err := redis.New("redis://"+mr.Addr(), redis.WithKey("recordings:test"))
	require.NoError(t, err)

	t.Cleanup(func() {
		p.Close()
	})

	return mr, p
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()

	mr, p := setupMiniRedis(t)

	data, err := p.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, data)

	s := recording.New(p)
	s.Add(ctx, recording.Entry{Text: "Hello world", AudioURL: "https://cdn.example/a.mp3", LatencyMs: 9})

	raw, err := mr.Get("recordings:test")
	require.NoError(t, err)
	require.Contains(t, raw, `"text":"Hello world"`)

	reloaded := recording.New(p)
	reloaded.Load(ctx)

	require.Equal(t, s.List(), reloaded.List())
}

func TestUnavailable(t *testing.T) {
	ctx := context.Background()

	mr, p := setupMiniRedis(t)
	mr.Close()

	s := recording.New(p)
	s.Load(ctx)

	r := s.Add(ctx, recording.Entry{Text: "offline"})

	require.Equal(t, 1, s.Len())
	require.Equal(t, r.ID, s.List()[0].ID)
}
