package client

import (
	"net/http"
	"time"
)

type RequestConfig struct {
	URL   string
	Token string

	Client  *http.Client
	Timeout time.Duration

	Model    string
	Speaker  string
	Language string

	Speed float32
}

type RequestOption func(*RequestConfig)

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = url
	}
}

func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}

// WithTimeout bounds a whole request including reading the body. Zero disables it.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(c *RequestConfig) {
		c.Timeout = timeout
	}
}

func WithModel(model string) RequestOption {
	return func(c *RequestConfig) {
		c.Model = model
	}
}

func WithSpeaker(speaker string) RequestOption {
	return func(c *RequestConfig) {
		c.Speaker = speaker
	}
}

func WithLanguage(language string) RequestOption {
	return func(c *RequestConfig) {
		c.Language = language
	}
}

// WithSpeed sets the playback rate; zero leaves the gateway default.
func WithSpeed(speed float32) RequestOption {
	return func(c *RequestConfig) {
		c.Speed = speed
	}
}
