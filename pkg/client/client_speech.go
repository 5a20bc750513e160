package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyText       = errors.New("text is required")
	ErrSynthesisFailed = errors.New("failed to generate speech")
)

type SpeechService struct {
	Options []RequestOption
}

func NewSpeechService(opts ...RequestOption) SpeechService {
	return SpeechService{
		Options: opts,
	}
}

type SpeechRequest struct {
	Text string
}

type Speech struct {
	AudioURL string

	// Latency spans dispatch of the request until the response body was read.
	Latency time.Duration
}

func (s *Speech) LatencyMs() int64 {
	return s.Latency.Milliseconds()
}

type speechRequest struct {
	Text string `json:"text"`
}

type speechResponse struct {
	AudioURL string `json:"audioUrl"`
}

func (r *SpeechService) New(ctx context.Context, input SpeechRequest, opts ...RequestOption) (*Speech, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyText
	}

	c := newRequestConfig(append(r.Options, opts...)...)

	u, err := url.Parse(strings.TrimRight(c.URL, "/") + "/text-to-speech")

	if err != nil {
		return nil, err
	}

	query := u.Query()

	if c.Model != "" {
		query.Set("model", c.Model)
	}

	if c.Speaker != "" {
		query.Set("speaker", c.Speaker)
	}

	if c.Language != "" {
		query.Set("lang", c.Language)
	}

	if c.Speed > 0 {
		query.Set("speed", strconv.FormatFloat(float64(c.Speed), 'f', -1, 32))
	}

	u.RawQuery = query.Encode()

	body, _ := json.Marshal(speechRequest{
		Text: input.Text,
	})

	req, err := http.NewRequestWithContext(ctx, "POST", u.String(), bytes.NewReader(body))

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	timestamp := time.Now()

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, failed(ctx, "error sending speech request", err)
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	latency := time.Since(timestamp)

	if err != nil {
		return nil, failed(ctx, "error reading speech response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, failed(ctx, "speech request rejected", errors.New(resp.Status))
	}

	var result speechResponse

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, failed(ctx, "error decoding speech response", err)
	}

	if result.AudioURL == "" {
		return nil, failed(ctx, "speech response has no audio url", nil)
	}

	return &Speech{
		AudioURL: result.AudioURL,
		Latency:  latency,
	}, nil
}

// failed logs the cause of a failed request and returns the bare sentinel so
// upstream details stay out of the error text.
func failed(ctx context.Context, msg string, err error) error {
	if err != nil {
		slog.WarnContext(ctx, msg, "error", err)
	} else {
		slog.WarnContext(ctx, msg)
	}

	return ErrSynthesisFailed
}
