package google

import (
	"context"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
}

// DefaultModel is the Gemini text-to-speech model used when none is configured.
const DefaultModel = "gemini-2.5-flash-preview-tts"

func NewSynthesizer(model string, options ...Option) (*Synthesizer, error) {
	if model == "" {
		model = DefaultModel
	}

	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	client, err := s.newClient(ctx)

	if err != nil {
		return nil, err
	}

	voice := options.Voice

	if voice == "" {
		voice = "Kore"
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},

		SpeechConfig: &genai.SpeechConfig{
			LanguageCode: options.Language,

			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(content), config)

	if err != nil {
		return nil, err
	}

	var data []byte
	var mimeType string

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil {
				continue
			}

			data = append(data, part.InlineData.Data...)
			mimeType = part.InlineData.MIMEType
		}
	}

	if len(data) == 0 {
		return nil, provider.ErrEmptyAudio
	}

	contentType := mimeType

	if strings.HasPrefix(strings.ToLower(mimeType), "audio/l16") || strings.Contains(strings.ToLower(mimeType), "pcm") {
		data = encodeWAV(data, sampleRate(mimeType), 1, 16)
		contentType = "audio/wav"
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:     data,
		ContentType: contentType,
	}, nil
}
