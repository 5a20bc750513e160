package otel

import (
	"context"
	"testing"

	"github.com/adrianliechti/narrator/pkg/auth"
	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := map[string]attribute.Value{}

	for _, a := range attrs {
		m[string(a.Key)] = a.Value
	}

	return m
}

func TestRequestAttrs(t *testing.T) {
	speed := float32(1.5)

	m := attrMap(requestAttrs("cloudflare", "melotts", "Grüezi", &provider.SynthesizeOptions{
		Voice:    "angus",
		Language: "de",
		Speed:    &speed,
	}))

	require.Equal(t, "cloudflare", m["gen_ai.provider.name"].AsString())
	require.Equal(t, "melotts", m["gen_ai.request.model"].AsString())
	require.Equal(t, int64(6), m["narrator.input.length"].AsInt64())
	require.Equal(t, "angus", m["narrator.speaker"].AsString())
	require.Equal(t, "de", m["narrator.lang"].AsString())
	require.InDelta(t, 1.5, m["narrator.speed"].AsFloat64(), 0.0001)
}

func TestRequestAttrsWithoutOptions(t *testing.T) {
	m := attrMap(requestAttrs("openai", "tts-1", "Hi", nil))

	require.Len(t, m, 3)
	require.NotContains(t, m, "narrator.speed")
}

func TestEndUserAttrs(t *testing.T) {
	require.Empty(t, endUserAttrs(context.Background()))

	ctx := context.WithValue(context.Background(), auth.UserContextKey, "jane")
	ctx = context.WithValue(ctx, auth.EmailContextKey, "jane@example.com")

	m := attrMap(endUserAttrs(ctx))
	require.Equal(t, "jane", m["enduser.id"].AsString())
	require.Equal(t, "jane@example.com", m["enduser.email"].AsString())
}
