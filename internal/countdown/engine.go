package countdown

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// State is the countdown lifecycle state.
type State int

const (
	StateRunning State = iota
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Engine recomputes the countdown string on each tick.
// Once the target is reached it moves to StateExpired and never
// computes again.
type Engine struct {
	mu     sync.Mutex
	logger *slog.Logger
	clock  Clock
	target time.Time

	state State
	last  string
}

// NewEngine creates an engine counting down to target.
func NewEngine(target time.Time, clock Clock, logger *slog.Logger) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		logger: logger,
		clock:  clock,
		target: target,
		state:  StateRunning,
	}
}

// Target returns the target instant.
func (e *Engine) Target() time.Time {
	return e.target
}

// Tick recomputes and returns the countdown string.
func (e *Engine) Tick() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateExpired {
		return e.last
	}

	r := Compute(e.clock.Now(), e.target)
	e.last = r.String()
	if r.Expired() {
		e.state = StateExpired
		e.logger.Info("countdown reached target", "target", e.target)
	}
	return e.last
}

// Last returns the most recently computed countdown string.
func (e *Engine) Last() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Expired reports whether the engine has reached StateExpired.
func (e *Engine) Expired() bool {
	return e.State() == StateExpired
}

// Run emits the countdown immediately and then once per TickInterval.
// It returns nil after emitting the celebration text, or ctx.Err() when
// the context is cancelled first. The ticker is stopped in both cases.
func (e *Engine) Run(ctx context.Context, emit func(string)) error {
	emit(e.Tick())
	if e.Expired() {
		return nil
	}

	ticker := e.clock.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("countdown stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C():
			emit(e.Tick())
			if e.Expired() {
				return nil
			}
		}
	}
}
