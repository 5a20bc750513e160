package otel

import (
	"context"

	"github.com/adrianliechti/narrator/pkg/auth"
	"github.com/adrianliechti/narrator/pkg/provider"

	"go.opentelemetry.io/otel/attribute"
)

// requestAttrs describes a synthesis request without recording its text.
func requestAttrs(providerName, model, input string, options *provider.SynthesizeOptions) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("gen_ai.provider.name", providerName),
		attribute.String("gen_ai.request.model", model),
		attribute.Int("narrator.input.length", len([]rune(input))),
	}

	if options == nil {
		return attrs
	}

	if options.Voice != "" {
		attrs = append(attrs, attribute.String("narrator.speaker", options.Voice))
	}

	if options.Language != "" {
		attrs = append(attrs, attribute.String("narrator.lang", options.Language))
	}

	if options.Speed != nil {
		attrs = append(attrs, attribute.Float64("narrator.speed", float64(*options.Speed)))
	}

	return attrs
}

func audioAttrs(contentType string, size int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("narrator.audio.content_type", contentType),
		attribute.Int("narrator.audio.size", size),
	}
}

// endUserAttrs identifies the authenticated caller, when known.
func endUserAttrs(ctx context.Context) []attribute.KeyValue {
	var attrs []attribute.KeyValue

	if user, ok := ctx.Value(auth.UserContextKey).(string); ok && user != "" {
		attrs = append(attrs, attribute.String("enduser.id", user))
	}

	if email, ok := ctx.Value(auth.EmailContextKey).(string); ok && email != "" {
		attrs = append(attrs, attribute.String("enduser.email", email))
	}

	return attrs
}
