package config

import (
	"bytes"
	"net/http"
	"os"

	"github.com/adrianliechti/narrator/pkg/auth"
	"github.com/adrianliechti/narrator/pkg/policy"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/storage"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Authorizers []auth.Provider

	Storage      storage.Provider
	PublicDomain string

	Policy    policy.Provider
	Normalize bool

	Upstream *Upstream

	client *http.Client

	defaultModel string

	models      map[string]provider.Model
	synthesizer map[string]provider.Synthesizer
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",

		Normalize: file.Normalize,
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if c.client, err = file.Proxy.proxyClient(); err != nil {
		return nil, err
	}

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerSynthesizers(file); err != nil {
		return nil, err
	}

	if err := c.registerStorage(file); err != nil {
		return nil, err
	}

	if err := c.registerPolicy(file); err != nil {
		return nil, err
	}

	if err := c.registerUpstream(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Synthesizers map[string]synthesizerConfig `yaml:"synthesizers"`

	Storage *storageConfig `yaml:"storage"`
	Policy  *policyConfig  `yaml:"policy"`

	Normalize bool `yaml:"normalize"`

	Upstream *upstreamConfig `yaml:"upstream"`
	Proxy    *proxyConfig    `yaml:"proxy"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
