package recording

import (
	"time"
)

// Recording is one completed text-to-speech conversion.
type Recording struct {
	ID string `json:"id"`

	Text     string `json:"text"`
	AudioURL string `json:"audioUrl"`

	LatencyMs int64 `json:"latencyMs"`

	IsRead bool `json:"isRead"`

	CreatedAt time.Time `json:"createdAt"`
}

// Entry holds the caller supplied fields of a new Recording.
type Entry struct {
	Text     string
	AudioURL string

	LatencyMs int64
}
