package policy

import (
	"context"
	"errors"
)

var ErrForbidden = errors.New("selection not allowed")

// Selection is the model, speaker and language triple requested by a caller.
type Selection struct {
	Model    string `json:"model"`
	Speaker  string `json:"speaker"`
	Language string `json:"lang"`

	User string `json:"user,omitempty"`
}

type Provider interface {
	Verify(ctx context.Context, selection Selection) error
}
