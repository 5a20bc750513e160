package proxy

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/narrator/config"

	"github.com/go-chi/chi/v5"
)

const (
	DefaultModel    = "melotts"
	DefaultSpeaker  = "angus"
	DefaultLanguage = "en"
)

type Handler struct {
	upstream *config.Upstream
}

func New(upstream *config.Upstream) (*Handler, error) {
	h := &Handler{
		upstream: upstream,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/text-to-speech", h.handleSpeech)
}

type speechRequest struct {
	Text json.RawMessage `json:"text,omitempty"`
}

func (h *Handler) handleSpeech(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := io.ReadAll(r.Body)

	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	var req speechRequest

	if err := json.Unmarshal(data, &req); err == nil {
		data, _ = json.Marshal(req)
	}

	u := h.upstream.URL.JoinPath("text-to-speech")

	query := u.Query()
	query.Set("model", valueOrDefault(r.URL.Query().Get("model"), DefaultModel))
	query.Set("speaker", valueOrDefault(r.URL.Query().Get("speaker"), DefaultSpeaker))
	query.Set("lang", valueOrDefault(r.URL.Query().Get("lang"), DefaultLanguage))

	if speed := r.URL.Query().Get("speed"); speed != "" {
		query.Set("speed", speed)
	}

	u.RawQuery = query.Encode()

	upstreamReq, err := http.NewRequestWithContext(ctx, "POST", u.String(), bytes.NewReader(data))

	if err != nil {
		writeError(w, http.StatusBadGateway, "Bad Gateway")
		return
	}

	upstreamReq.Header.Set("Content-Type", "application/json")

	if h.upstream.Token != "" {
		upstreamReq.Header.Set("Authorization", "Bearer "+h.upstream.Token)
	}

	resp, err := h.upstream.Client.Do(upstreamReq)

	if err != nil {
		slog.ErrorContext(ctx, "error forwarding speech request", "error", err)

		writeError(w, http.StatusBadGateway, "Bad Gateway")
		return
	}

	defer resp.Body.Close()

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

func valueOrDefault(value, fallback string) string {
	if value != "" {
		return value
	}

	return fallback
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(map[string]string{
		"error": message,
	})
}
