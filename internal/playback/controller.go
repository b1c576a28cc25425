// Package playback tracks whether the background music is playing and
// keeps that flag consistent with the audio resource across failures.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Sentinel errors for the two recognised failure kinds.
var (
	ErrPlaybackRequest = errors.New("playback request failed")
	ErrResource        = errors.New("playback resource error")
)

// Op is the request issued to the resource by a toggle.
type Op string

const (
	OpPlay  Op = "play"
	OpPause Op = "pause"
)

// RequestError is returned when a play or pause request fails.
type RequestError struct {
	Op  Op
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrPlaybackRequest }

// ResourceError wraps an out-of-band error reported by the resource.
type ResourceError struct {
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("audio resource error: %v", e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

func (e *ResourceError) Is(target error) bool { return target == ErrResource }

// Resource is a single looping audio asset.
type Resource interface {
	Play(ctx context.Context) error
	Pause(ctx context.Context) error

	// Errors delivers asynchronous resource failures. May be nil.
	Errors() <-chan error
}

// Result is the outcome of a play or pause request.
type Result struct {
	Op  Op
	Err error
}

// Controller owns the playing/paused flag for a Resource.
// The initial state is paused.
type Controller struct {
	logger  *slog.Logger
	res     Resource
	playing atomic.Bool
}

// NewController creates a controller for res.
func NewController(res Resource, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		logger: logger,
		res:    res,
	}
}

// IsPlaying reports the current state.
func (c *Controller) IsPlaying() bool {
	return c.playing.Load()
}

// Request issues pause when playing and play when paused, without
// changing state. It is safe to call off the event loop.
func (c *Controller) Request(ctx context.Context) (result Result) {
	result.Op = OpPlay
	if c.playing.Load() {
		result.Op = OpPause
	}

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic: %v", r)
		}
	}()

	switch result.Op {
	case OpPause:
		result.Err = c.res.Pause(ctx)
	default:
		result.Err = c.res.Play(ctx)
	}
	return result
}

// Apply commits a request result. A failure forces the paused state and
// is returned as a *RequestError.
func (c *Controller) Apply(r Result) error {
	if r.Err != nil {
		c.logger.Warn("playback error", "op", r.Op, "error", r.Err)
		c.playing.Store(false)
		return &RequestError{Op: r.Op, Err: r.Err}
	}

	c.playing.Store(r.Op == OpPlay)
	c.logger.Debug("playback toggled", "playing", r.Op == OpPlay)
	return nil
}

// Toggle flips between playing and paused.
func (c *Controller) Toggle(ctx context.Context) error {
	return c.Apply(c.Request(ctx))
}

// ResourceError forces the paused state after an out-of-band failure.
func (c *Controller) ResourceError(err error) error {
	c.logger.Warn("audio error", "error", err)
	c.playing.Store(false)
	return &ResourceError{Err: err}
}

// Errors exposes the resource's asynchronous error stream.
func (c *Controller) Errors() <-chan error {
	if c.res == nil {
		return nil
	}
	return c.res.Errors()
}
