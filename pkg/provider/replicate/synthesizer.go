package replicate

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

// Kokoro is the default text-to-speech model, pinned to a version.
const Kokoro = "jaaari/kokoro-82m:f559560eb822dc509045f3921a1921234918b91739db4bf3daab2169b71c7a13"

type Synthesizer struct {
	*Client
}

func NewSynthesizer(model string, options ...Option) (*Synthesizer, error) {
	if model == "" {
		model = Kokoro
	}

	client, err := New(model, options...)

	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		Client: client,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	resp, err := s.Run(ctx, convertInput(content, options))

	if err != nil {
		return nil, err
	}

	return s.convertAudio(resp)
}

// https://replicate.com/jaaari/kokoro-82m/api/schema#input-schema
func convertInput(content string, options *provider.SynthesizeOptions) PredictionInput {
	input := PredictionInput{
		"text": content,
	}

	if options.Voice != "" {
		input["voice"] = options.Voice
	}

	if options.Speed != nil {
		input["speed"] = *options.Speed
	}

	return input
}

func (s *Synthesizer) convertAudio(output PredictionOutput) (*provider.Synthesis, error) {
	file, ok := output.(*FileOutput)

	if !ok {
		return nil, errors.New("unsupported output")
	}

	defer file.Close()

	data, err := io.ReadAll(file)

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
		ContentType: detectContentType(file.URL),
	}, nil
}

func detectContentType(url string) string {
	ext := strings.ToLower(path.Ext(url))

	if ext == ".mp3" {
		return "audio/mpeg"
	}

	if ext == ".wav" {
		return "audio/wav"
	}

	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "audio/") {
		return t
	}

	return "audio/wav"
}
