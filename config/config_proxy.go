package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpproxy"
)

// proxyConfig routes outbound provider, storage and upstream traffic through
// a forward proxy. Hosts in Bypass are dialed directly.
type proxyConfig struct {
	URL    string   `yaml:"url"`
	Bypass []string `yaml:"bypass"`
}

func (cfg *proxyConfig) proxyClient() (*http.Client, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, nil
	}

	u, err := url.Parse(cfg.URL)

	if err != nil {
		return nil, fmt.Errorf("invalid proxy url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "socks5":
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("proxy url %q has no host", cfg.URL)
	}

	proxy := (&httpproxy.Config{
		HTTPProxy:  u.String(),
		HTTPSProxy: u.String(),
		NoProxy:    strings.Join(cfg.Bypass, ","),
	}).ProxyFunc()

	tr := http.DefaultTransport.(*http.Transport).Clone()

	tr.Proxy = func(r *http.Request) (*url.URL, error) {
		return proxy(r.URL)
	}

	return &http.Client{
		Transport: tr,
	}, nil
}
