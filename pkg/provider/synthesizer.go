package provider

import (
	"context"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, input string, options *SynthesizeOptions) (*Synthesis, error)
}

type SynthesizeOptions struct {
	Voice    string
	Language string

	Speed *float32
}

type Synthesis struct {
	ID    string
	Model string

	Content     []byte
	ContentType string
}
