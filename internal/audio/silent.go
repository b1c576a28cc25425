package audio

import (
	"context"
	"errors"
)

// ErrAudioDisabled is returned by Silent.Play.
var ErrAudioDisabled = errors.New("audio disabled")

// Silent is a resource with no output device. Play always fails so the
// controller stays paused.
type Silent struct {
	Reason error
}

// NewSilent returns a Silent resource. A nil reason means ErrAudioDisabled.
func NewSilent(reason error) *Silent {
	if reason == nil {
		reason = ErrAudioDisabled
	}
	return &Silent{Reason: reason}
}

func (s *Silent) Play(context.Context) error {
	if errors.Is(s.Reason, ErrAudioDisabled) {
		return s.Reason
	}
	return errors.Join(ErrAudioDisabled, s.Reason)
}

func (s *Silent) Pause(context.Context) error { return nil }

func (s *Silent) Errors() <-chan error { return nil }
