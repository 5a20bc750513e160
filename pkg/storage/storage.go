package storage

import (
	"context"
	"mime"
	"strings"
)

// Provider writes audio objects to a bucket.
type Provider interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Extension returns the file extension used for objects of the given content type.
func Extension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)

	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"

	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"

	case "audio/ogg", "audio/opus":
		return ".ogg"

	case "audio/flac":
		return ".flac"

	case "audio/aac":
		return ".aac"
	}

	return ".mp3"
}
