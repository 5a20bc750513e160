package cloudflare

import (
	"net/http"
	"strings"
)

type Config struct {
	url string

	account string
	token   string
	model   string

	client *http.Client
}

type Option func(*Config)

func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

func (c *Config) endpoint() string {
	url := c.url

	if url == "" {
		url = "https://api.cloudflare.com/client/v4/"
	}

	url = strings.TrimRight(url, "/")

	return url + "/accounts/" + c.account + "/ai/run/" + c.model
}

func (c *Config) httpClient() *http.Client {
	if c.client == nil {
		return http.DefaultClient
	}

	return c.client
}
