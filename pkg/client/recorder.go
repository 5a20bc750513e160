package client

import (
	"context"

	"github.com/adrianliechti/narrator/pkg/recording"
)

// Recorder submits text for synthesis and records every successful result.
type Recorder struct {
	speech *SpeechService
	store  *recording.Store
}

func NewRecorder(speech *SpeechService, store *recording.Store) *Recorder {
	return &Recorder{
		speech: speech,
		store:  store,
	}
}

// Submit synthesizes text and prepends the result to the store. Nothing is
// recorded when synthesis fails.
func (r *Recorder) Submit(ctx context.Context, text string, opts ...RequestOption) (*recording.Recording, error) {
	speech, err := r.speech.New(ctx, SpeechRequest{Text: text}, opts...)

	if err != nil {
		return nil, err
	}

	rec := r.store.Add(ctx, recording.Entry{
		Text:     text,
		AudioURL: speech.AudioURL,

		LatencyMs: speech.LatencyMs(),
	})

	return &rec, nil
}
