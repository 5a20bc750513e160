package config

import (
	"errors"
	"slices"
	"strings"

	"github.com/adrianliechti/narrator/pkg/limiter"
	"github.com/adrianliechti/narrator/pkg/otel"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/provider/cloudflare"
	"github.com/adrianliechti/narrator/pkg/provider/google"
	"github.com/adrianliechti/narrator/pkg/provider/openai"
	"github.com/adrianliechti/narrator/pkg/provider/polly"
	"github.com/adrianliechti/narrator/pkg/provider/replicate"
)

// preferredModel serves requests that name no model when it is configured.
const preferredModel = "melotts"

type synthesizerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Account string `yaml:"account"`
	Region  string `yaml:"region"`

	Model string `yaml:"model"`

	Limit *int `yaml:"limit"`
}

func (c *Config) registerSynthesizers(f *configFile) error {
	ids := make([]string, 0, len(f.Synthesizers))

	for id := range f.Synthesizers {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	if slices.Contains(ids, preferredModel) {
		ids = append([]string{preferredModel}, slices.DeleteFunc(ids, func(id string) bool {
			return id == preferredModel
		})...)
	}

	for _, id := range ids {
		cfg := f.Synthesizers[id]

		s, err := c.createSynthesizer(id, cfg)

		if err != nil {
			return errors.New("synthesizer " + id + ": " + err.Error())
		}

		s = otel.NewSynthesizer(strings.ToLower(cfg.Type), id, s)

		if cfg.Limit != nil {
			s = limiter.NewSynthesizer(limiter.New(*cfg.Limit), s)
		}

		c.RegisterSynthesizer(id, s)
	}

	return nil
}

func (c *Config) RegisterModel(id string) {
	if c.models == nil {
		c.models = make(map[string]provider.Model)
	}

	c.models[id] = provider.Model{
		ID: id,
	}
}

// Models returns the registered model ids in sorted order.
func (c *Config) Models() []provider.Model {
	var result []provider.Model

	for _, m := range c.models {
		result = append(result, m)
	}

	slices.SortFunc(result, func(a, b provider.Model) int {
		return strings.Compare(a.ID, b.ID)
	})

	return result
}

// RegisterSynthesizer adds a synthesizer. The first one registered also
// serves requests that name no model.
func (c *Config) RegisterSynthesizer(id string, p provider.Synthesizer) {
	c.RegisterModel(id)

	if c.synthesizer == nil {
		c.synthesizer = make(map[string]provider.Synthesizer)
	}

	if _, ok := c.synthesizer[""]; !ok {
		c.synthesizer[""] = p
		c.defaultModel = id
	}

	c.synthesizer[id] = p
}

// DefaultModel returns the id of the synthesizer used when none is named.
func (c *Config) DefaultModel() string {
	return c.defaultModel
}

func (c *Config) Synthesizer(id string) (provider.Synthesizer, error) {
	if c.synthesizer != nil {
		if s, ok := c.synthesizer[id]; ok {
			return s, nil
		}
	}

	return nil, errors.New("synthesizer not found: " + id)
}

func (c *Config) createSynthesizer(id string, cfg synthesizerConfig) (provider.Synthesizer, error) {
	switch strings.ToLower(cfg.Type) {
	case "cloudflare":
		return c.cloudflareSynthesizer(cfg)

	case "openai", "openai-compatible":
		return c.openaiSynthesizer(id, cfg)

	case "google", "gemini":
		return c.googleSynthesizer(cfg)

	case "polly", "aws":
		return c.pollySynthesizer(cfg)

	case "replicate":
		return c.replicateSynthesizer(cfg)

	default:
		return nil, errors.New("invalid synthesizer type: " + cfg.Type)
	}
}

func (c *Config) cloudflareSynthesizer(cfg synthesizerConfig) (provider.Synthesizer, error) {
	var options []cloudflare.Option

	if cfg.URL != "" {
		options = append(options, cloudflare.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, cloudflare.WithToken(cfg.Token))
	}

	if c.client != nil {
		options = append(options, cloudflare.WithClient(c.client))
	}

	return cloudflare.NewSynthesizer(cfg.Account, cfg.Model, options...)
}

func (c *Config) openaiSynthesizer(id string, cfg synthesizerConfig) (provider.Synthesizer, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	if c.client != nil {
		options = append(options, openai.WithClient(c.client))
	}

	model := cfg.Model

	if model == "" {
		model = id
	}

	return openai.NewSynthesizer(cfg.URL, model, options...)
}

func (c *Config) googleSynthesizer(cfg synthesizerConfig) (provider.Synthesizer, error) {
	var options []google.Option

	if cfg.URL != "" {
		options = append(options, google.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, google.WithToken(cfg.Token))
	}

	if c.client != nil {
		options = append(options, google.WithClient(c.client))
	}

	return google.NewSynthesizer(cfg.Model, options...)
}

func (c *Config) pollySynthesizer(cfg synthesizerConfig) (provider.Synthesizer, error) {
	var options []polly.Option

	if cfg.Region != "" {
		options = append(options, polly.WithRegion(cfg.Region))
	}

	if c.client != nil {
		options = append(options, polly.WithClient(c.client))
	}

	return polly.NewSynthesizer(cfg.Model, options...)
}

func (c *Config) replicateSynthesizer(cfg synthesizerConfig) (provider.Synthesizer, error) {
	var options []replicate.Option

	if cfg.Token != "" {
		options = append(options, replicate.WithToken(cfg.Token))
	}

	if c.client != nil {
		options = append(options, replicate.WithClient(c.client))
	}

	return replicate.NewSynthesizer(cfg.Model, options...)
}
