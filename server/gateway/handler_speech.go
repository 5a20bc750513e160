package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/adrianliechti/narrator/pkg/policy"
)

type SpeechRequest struct {
	Text any `json:"text"`
}

type SpeechResponse struct {
	AudioURL string `json:"audioUrl"`
}

func (h *Handler) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req SpeechRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	input, ok := req.Text.(string)

	if !ok || input == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	speed, err := valueSpeed(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid speed")
		return
	}

	result, err := h.Speak(r.Context(), SpeakRequest{
		Text: input,

		Model:    r.URL.Query().Get("model"),
		Speaker:  r.URL.Query().Get("speaker"),
		Language: r.URL.Query().Get("lang"),

		Speed: speed,
	})

	switch {
	case err == nil:
		writeJson(w, SpeechResponse{
			AudioURL: result.AudioURL,
		})

	case errors.Is(err, ErrEmptyText):
		writeError(w, http.StatusBadRequest, "Text is required")

	case errors.Is(err, ErrModelNotFound):
		writeError(w, http.StatusBadRequest, "model not found")

	case errors.Is(err, policy.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")

	default:
		writeError(w, http.StatusInternalServerError, "Failed to generate audio")
	}
}

// valueSpeed parses the optional speed query parameter, a positive playback rate.
func valueSpeed(r *http.Request) (*float32, error) {
	val := r.URL.Query().Get("speed")

	if val == "" {
		return nil, nil
	}

	speed, err := strconv.ParseFloat(val, 32)

	if err != nil || speed <= 0 {
		return nil, errors.New("invalid speed")
	}

	result := float32(speed)
	return &result, nil
}
