package client

import (
	"net/http"
)

type Client struct {
	Speech SpeechService
	Audio  AudioService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Speech: NewSpeechService(opts...),
		Audio:  NewAudioService(opts...),
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.Timeout > 0 {
		client := *c.Client
		client.Timeout = c.Timeout

		c.Client = &client
	}

	return c
}
