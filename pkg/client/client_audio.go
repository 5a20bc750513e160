package client

import (
	"context"
	"errors"
	"io"
	"net/http"
)

type AudioService struct {
	Options []RequestOption
}

func NewAudioService(opts ...RequestOption) AudioService {
	return AudioService{
		Options: opts,
	}
}

// Download streams the audio object at audioURL to w. Audio URLs are public,
// so no credentials are sent.
func (r *AudioService) Download(ctx context.Context, audioURL string, w io.Writer, opts ...RequestOption) (int64, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, err := http.NewRequestWithContext(ctx, "GET", audioURL, nil)

	if err != nil {
		return 0, err
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return 0, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.New(resp.Status)
	}

	return io.Copy(w, resp.Body)
}
