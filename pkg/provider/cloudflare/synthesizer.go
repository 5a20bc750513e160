package cloudflare

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/narrator/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

const (
	ModelMeloTTS = "@cf/myshell-ai/melotts"
	ModelAura1   = "@cf/deepgram/aura-1"
)

// Synthesizer runs a Workers AI text-to-speech model.
type Synthesizer struct {
	*Config
}

func NewSynthesizer(account, model string, options ...Option) (*Synthesizer, error) {
	if account == "" {
		return nil, errors.New("cloudflare account is required")
	}

	if model == "" {
		model = ModelMeloTTS
	}

	cfg := &Config{
		account: account,
		model:   model,
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

	body, err := json.Marshal(s.convertInput(content, options))

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(body))

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient().Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	data, contentType, err := s.convertOutput(resp)

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
		ContentType: contentType,
	}, nil
}

func (s *Synthesizer) isAura() bool {
	return strings.Contains(s.model, "/aura")
}

func (s *Synthesizer) convertInput(content string, options *provider.SynthesizeOptions) map[string]any {
	if s.isAura() {
		// https://developers.cloudflare.com/workers-ai/models/aura-1/
		input := map[string]any{
			"text": content,
		}

		if options.Voice != "" {
			input["speaker"] = options.Voice
		}

		return input
	}

	// https://developers.cloudflare.com/workers-ai/models/melotts/
	input := map[string]any{
		"prompt": content,
		"lang":   "en",
	}

	if options.Language != "" {
		input["lang"] = options.Language
	}

	return input
}

type runResult struct {
	Result struct {
		Audio string `json:"audio"`
	} `json:"result"`

	Success bool       `json:"success"`
	Errors  []apiError `json:"errors"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Synthesizer) convertOutput(resp *http.Response) ([]byte, string, error) {
	contentType := resp.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "audio/") {
		data, err := io.ReadAll(resp.Body)
		return data, contentType, err
	}

	var result runResult

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, "", err
	}

	if !result.Success && len(result.Errors) > 0 {
		return nil, "", fmt.Errorf("cloudflare: %s", result.Errors[0].Message)
	}

	data, err := base64.StdEncoding.DecodeString(result.Result.Audio)

	if err != nil {
		return nil, "", err
	}

	return data, "audio/mpeg", nil
}

func convertError(resp *http.Response) error {
	var result runResult

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if err := json.Unmarshal(data, &result); err == nil && len(result.Errors) > 0 {
		return fmt.Errorf("cloudflare: %s (%d)", result.Errors[0].Message, resp.StatusCode)
	}

	return fmt.Errorf("cloudflare: unexpected status %d", resp.StatusCode)
}
