package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/adrianliechti/narrator/pkg/limiter"
	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/stretchr/testify/require"
)

type countingSynthesizer struct {
	calls int
}

func (s *countingSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	s.calls++

	return &provider.Synthesis{
		Content:     []byte(input),
		ContentType: "audio/mpeg",
	}, nil
}

func TestNew(t *testing.T) {
	require.Nil(t, limiter.New(0))
	require.Nil(t, limiter.New(-1))
	require.NotNil(t, limiter.New(5))
}

func TestSynthesizerUnlimited(t *testing.T) {
	p := &countingSynthesizer{}
	s := limiter.NewSynthesizer(nil, p)

	for range 10 {
		_, err := s.Synthesize(context.Background(), "hi", nil)
		require.NoError(t, err)
	}

	require.Equal(t, 10, p.calls)
}

func TestSynthesizerCancelled(t *testing.T) {
	p := &countingSynthesizer{}
	s := limiter.NewSynthesizer(limiter.New(1), p)

	_, err := s.Synthesize(context.Background(), "first", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = s.Synthesize(ctx, "second", nil)
	require.Error(t, err)
	require.Equal(t, 1, p.calls)
}
