package provider

import (
	"errors"
)

type Model struct {
	ID string
}

var ErrEmptyAudio = errors.New("provider returned no audio")
