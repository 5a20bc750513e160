package otel

import (
	"context"

	"github.com/adrianliechti/narrator/pkg/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Storage interface {
	Observable
	storage.Provider
}

type observableStorage struct {
	name string

	storage storage.Provider
}

func NewStorage(name string, p storage.Provider) Storage {
	return &observableStorage{
		name:    name,
		storage: p,
	}
}

func (p *observableStorage) otelSetup() {
}

func (p *observableStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "storage put "+p.name)
	defer span.End()

	span.SetAttributes(
		attribute.String("narrator.storage.key", key),
		attribute.Int("narrator.storage.size", len(data)),
		attribute.String("narrator.storage.content_type", contentType),
	)

	if err := p.storage.Put(ctx, key, data, contentType); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	return nil
}
