package config

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestParseGateway(t *testing.T) {
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acc")

	dir := t.TempDir()

	path := writeConfig(t, `
address: ":9090"
authorizers:
  - type: static
    token: ${API_TOKEN}
synthesizers:
  aura:
    type: cloudflare
    account: ${CLOUDFLARE_ACCOUNT_ID}
    model: "@cf/deepgram/aura-1"
  melotts:
    type: cloudflare
    account: ${CLOUDFLARE_ACCOUNT_ID}
    token: token
    limit: 10
storage:
  type: file
  path: `+dir+`
  public_domain: https://cdn.example/
normalize: true
`)

	c, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", c.Address)
	require.Len(t, c.Authorizers, 1)
	require.True(t, c.Normalize)
	require.Nil(t, c.Policy)
	require.Nil(t, c.Upstream)
	require.Equal(t, "https://cdn.example/", c.PublicDomain)

	require.NotNil(t, c.Storage)
	require.NoError(t, c.Storage.Put(context.Background(), "generated-audio/a.mp3", []byte("x"), "audio/mpeg"))
	require.FileExists(t, filepath.Join(dir, "generated-audio", "a.mp3"))

	models := c.Models()
	require.Len(t, models, 2)
	require.Equal(t, "aura", models[0].ID)
	require.Equal(t, "melotts", models[1].ID)

	melotts, err := c.Synthesizer("melotts")
	require.NoError(t, err)

	def, err := c.Synthesizer("")
	require.NoError(t, err)
	require.Same(t, melotts, def)
	require.Equal(t, "melotts", c.DefaultModel())

	_, err = c.Synthesizer("missing")
	require.Error(t, err)
}

func TestParseProxy(t *testing.T) {
	path := writeConfig(t, `
authorizers:
  - type: static
    token: secret
upstream:
  url: https://tts.example
  token: upstream-secret
proxy:
  url: http://corp-proxy:3128
`)

	c, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":8080", c.Address)
	require.NotNil(t, c.Upstream)
	require.Equal(t, "https://tts.example", c.Upstream.URL.String())
	require.Equal(t, "upstream-secret", c.Upstream.Token)
	require.NotNil(t, c.Upstream.Client)
	require.NotNil(t, c.Upstream.Client.Transport)
}

func TestParseProxyBypass(t *testing.T) {
	cfg := &proxyConfig{
		URL:    "http://corp-proxy:3128",
		Bypass: []string{"internal.example"},
	}

	client, err := cfg.proxyClient()
	require.NoError(t, err)

	tr := client.Transport.(*http.Transport)

	r, _ := http.NewRequest(http.MethodGet, "https://api.cloudflare.com/client/v4", nil)
	u, err := tr.Proxy(r)
	require.NoError(t, err)
	require.Equal(t, "corp-proxy:3128", u.Host)

	r, _ = http.NewRequest(http.MethodGet, "https://internal.example/tts", nil)
	u, err = tr.Proxy(r)
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestParseProxyInvalid(t *testing.T) {
	for _, raw := range []string{"ftp://corp-proxy:21", "http://", "://bad"} {
		_, err := (&proxyConfig{URL: raw}).proxyClient()
		require.Error(t, err, raw)
	}

	client, err := (&proxyConfig{}).proxyClient()
	require.NoError(t, err)
	require.Nil(t, client)
}

func TestParseUpstreamTokenFallback(t *testing.T) {
	path := writeConfig(t, `
authorizers:
  - type: static
    token: secret
upstream:
  url: https://tts.example
`)

	c, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, "secret", c.Upstream.Token)
	require.Same(t, http.DefaultClient, c.Upstream.Client)
}

func TestParsePolicy(t *testing.T) {
	path := writeConfig(t, `
policy:
  type: opa
  module: |
    package narrator

    default allow := false

    allow if {
      input.model == "melotts"
    }
`)

	c, err := Parse(path)
	require.NoError(t, err)
	require.NotNil(t, c.Policy)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "unknown: true\n"},
		{"authorizer type", "authorizers:\n  - type: header\n"},
		{"static without token", "authorizers:\n  - type: static\n"},
		{"synthesizer type", "synthesizers:\n  x:\n    type: unknown\n"},
		{"cloudflare without account", "synthesizers:\n  x:\n    type: cloudflare\n"},
		{"storage type", "storage:\n  type: ftp\n"},
		{"policy type", "policy:\n  type: cedar\n"},
		{"upstream without url", "upstream:\n  token: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
