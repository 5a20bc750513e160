package config

import (
	"errors"
	"net/http"
	"net/url"
)

// Upstream is the synthesis gateway the proxy forwards to.
type Upstream struct {
	URL   *url.URL
	Token string

	Client *http.Client
}

// upstreamConfig falls back to the first static authorizer token when no
// token is set.
type upstreamConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

func (c *Config) registerUpstream(f *configFile) error {
	if f.Upstream == nil {
		return nil
	}

	if f.Upstream.URL == "" {
		return errors.New("upstream url is required")
	}

	u, err := url.Parse(f.Upstream.URL)

	if err != nil {
		return err
	}

	token := f.Upstream.Token

	if token == "" {
		for _, a := range f.Authorizers {
			if a.Token != "" {
				token = a.Token
				break
			}
		}
	}

	client := c.client

	if client == nil {
		client = http.DefaultClient
	}

	c.Upstream = &Upstream{
		URL:   u,
		Token: token,

		Client: client,
	}

	return nil
}
