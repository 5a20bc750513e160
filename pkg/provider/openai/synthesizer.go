package openai

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
	speech openai.AudioSpeechService
}

func NewSynthesizer(url, model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
		speech: openai.NewAudioSpeechService(cfg.Options()...),
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	voice := strings.ToLower(options.Voice)

	if !slices.Contains(SpeechVoices, voice) {
		voice = "alloy"
	}

	params := openai.AudioSpeechNewParams{
		Model: s.model,
		Input: content,

		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}

	if options.Speed != nil {
		params.Speed = openai.Float(float64(*options.Speed))
	}

	result, err := s.speech.New(ctx, params, option.WithJSONSet("voice", voice))

	if err != nil {
		return nil, convertError(err)
	}

	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, provider.ErrEmptyAudio
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:     data,
		ContentType: "audio/mpeg",
	}, nil
}
