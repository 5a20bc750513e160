package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adrianliechti/narrator/pkg/auth"
	"github.com/adrianliechti/narrator/pkg/policy"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/storage"
	"github.com/adrianliechti/narrator/pkg/text"

	"github.com/google/uuid"
)

// KeyPrefix is prepended to every generated audio object key.
const KeyPrefix = "generated-audio/"

var (
	ErrEmptyText     = errors.New("text is required")
	ErrModelNotFound = errors.New("model not found")
	ErrGenerate      = errors.New("failed to generate audio")
)

type SpeakRequest struct {
	Text string

	Model    string
	Speaker  string
	Language string

	Speed *float32
}

type SpeakResult struct {
	Key      string
	AudioURL string

	ContentType string
}

// Speak synthesizes the request, stores the audio and returns its public URL.
// Failures other than empty text, an unknown model or a rejected selection
// are reported as ErrGenerate.
func (h *Handler) Speak(ctx context.Context, req SpeakRequest) (*SpeakResult, error) {
	synthesizer, err := h.Synthesizer(req.Model)

	if err != nil {
		return nil, ErrModelNotFound
	}

	model := req.Model

	if model == "" {
		model = h.DefaultModel()
	}

	if h.Policy != nil {
		user, _ := ctx.Value(auth.UserContextKey).(string)

		selection := policy.Selection{
			Model:    model,
			Speaker:  req.Speaker,
			Language: req.Language,

			User: user,
		}

		if err := h.Policy.Verify(ctx, selection); err != nil {
			if errors.Is(err, policy.ErrForbidden) {
				return nil, err
			}

			slog.ErrorContext(ctx, "error evaluating policy", "model", model, "error", err)
			return nil, ErrGenerate
		}
	}

	if h.Storage == nil {
		slog.ErrorContext(ctx, "no storage configured")
		return nil, ErrGenerate
	}

	input := req.Text

	if h.Normalize {
		input = text.Prepare(input)
	}

	if input == "" {
		return nil, ErrEmptyText
	}

	options := &provider.SynthesizeOptions{
		Voice:    req.Speaker,
		Language: req.Language,

		Speed: req.Speed,
	}

	synthesis, err := synthesizer.Synthesize(ctx, input, options)

	if err != nil {
		slog.ErrorContext(ctx, "error synthesizing speech", "model", model, "error", err)
		return nil, ErrGenerate
	}

	if len(synthesis.Content) == 0 {
		slog.ErrorContext(ctx, "error synthesizing speech", "model", model, "error", provider.ErrEmptyAudio)
		return nil, ErrGenerate
	}

	contentType := synthesis.ContentType

	if contentType == "" {
		contentType = "audio/mpeg"
	}

	key := KeyPrefix + uuid.NewString() + storage.Extension(contentType)

	if err := h.Storage.Put(ctx, key, synthesis.Content, contentType); err != nil {
		slog.ErrorContext(ctx, "error storing audio", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}

	return &SpeakResult{
		Key:      key,
		AudioURL: h.PublicDomain + key,

		ContentType: contentType,
	}, nil
}
