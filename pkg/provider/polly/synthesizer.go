package polly

import (
	"context"
	"io"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config

	client *polly.Client
}

// NewSynthesizer creates an Amazon Polly synthesizer. The model selects the
// engine (standard, neural, long-form or generative).
func NewSynthesizer(model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		engine: model,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.engine == "" {
		cfg.engine = string(types.EngineNeural)
	}

	var loadOptions []func(*config.LoadOptions) error

	if cfg.region != "" {
		loadOptions = append(loadOptions, config.WithRegion(cfg.region))
	}

	if cfg.client != nil {
		loadOptions = append(loadOptions, config.WithHTTPClient(cfg.client))
	}

	awsConfig, err := config.LoadDefaultConfig(context.Background(), loadOptions...)

	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		Config: cfg,

		client: polly.NewFromConfig(awsConfig),
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	input := convertInput(s.engine, content, options)

	result, err := s.client.SynthesizeSpeech(ctx, input)

	if err != nil {
		return nil, err
	}

	defer result.AudioStream.Close()

	data, err := io.ReadAll(result.AudioStream)

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, provider.ErrEmptyAudio
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.engine,

		Content:     data,
		ContentType: "audio/mpeg",
	}, nil
}

func convertInput(engine, content string, options *provider.SynthesizeOptions) *polly.SynthesizeSpeechInput {
	voice := options.Voice

	if voice == "" {
		voice = string(types.VoiceIdJoanna)
	}

	input := &polly.SynthesizeSpeechInput{
		Engine: types.Engine(engine),

		Text:    aws.String(content),
		VoiceId: types.VoiceId(capitalize(voice)),

		OutputFormat: types.OutputFormatMp3,
	}

	// Polly expects full locale codes like en-US; short codes are left to the voice default.
	if strings.Contains(options.Language, "-") {
		input.LanguageCode = types.LanguageCode(options.Language)
	}

	return input
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
