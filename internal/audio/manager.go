package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrResourceMissing is reported when the audio file disappears.
var ErrResourceMissing = errors.New("audio file removed")

// errBuffer bounds queued out-of-band errors; extras are dropped.
const errBuffer = 4

// Manager is the background music resource. It loads the file once in the
// background, watches it for changes and reports failures on Errors.
type Manager struct {
	mu      sync.Mutex
	logger  *slog.Logger
	player  *Player
	watcher *Watcher

	path  string
	watch bool

	errs    chan error
	ready   chan struct{}
	loadErr error
	started bool
}

// NewManager creates a manager for the file at path.
func NewManager(path string, watch bool, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		logger: logger,
		player: NewPlayer(logger),
		path:   path,
		watch:  watch,
		errs:   make(chan error, errBuffer),
		ready:  make(chan struct{}),
	}
}

// Start begins loading the file and, if enabled, watching it.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()

	go m.initialLoad()

	if !m.watch {
		return nil
	}

	w, err := NewWatcher(m.path, m.logger)
	if err != nil {
		return fmt.Errorf("failed to create audio watcher: %w", err)
	}
	w.OnChange(m.reload)
	w.OnRemove(m.removed)
	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return fmt.Errorf("failed to start audio watcher: %w", err)
	}

	m.mu.Lock()
	m.watcher = w
	m.mu.Unlock()
	return nil
}

func (m *Manager) initialLoad() {
	err := m.player.Load(m.path)

	m.mu.Lock()
	m.loadErr = err
	m.mu.Unlock()
	close(m.ready)

	if err != nil {
		m.logger.Warn("failed to load sound", "path", m.path, "error", err)
		m.report(err)
		return
	}
	m.logger.Info("audio loaded", "path", m.path, "volume", m.player.Volume())
}

// reload re-decodes the file after it changed on disk.
func (m *Manager) reload() {
	select {
	case <-m.ready:
	default:
		// initial load still running; it will read the new contents
		return
	}

	if err := m.player.Load(m.path); err != nil {
		_ = m.player.SetPaused(true)
		m.logger.Warn("failed to reload sound", "path", m.path, "error", err)
		m.report(err)
		return
	}

	m.mu.Lock()
	m.loadErr = nil
	m.mu.Unlock()
}

func (m *Manager) removed() {
	_ = m.player.SetPaused(true)
	m.report(fmt.Errorf("%w: %s", ErrResourceMissing, m.path))
}

// report delivers err on the errors channel without blocking.
func (m *Manager) report(err error) {
	select {
	case m.errs <- err:
	default:
		m.logger.Debug("dropped audio error", "error", err)
	}
}

// Play resumes the loop, waiting for the initial load if necessary.
func (m *Manager) Play(ctx context.Context) error {
	select {
	case <-m.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.mu.Lock()
	err := m.loadErr
	m.mu.Unlock()
	if err != nil {
		return err
	}

	return m.player.SetPaused(false)
}

// Pause pauses the loop. Pausing before anything is loaded is a no-op.
func (m *Manager) Pause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.player.Loaded() {
		return nil
	}
	return m.player.SetPaused(true)
}

// Errors delivers asynchronous load, decode and missing-file failures.
func (m *Manager) Errors() <-chan error {
	return m.errs
}

// Stop shuts down the watcher and the speaker.
func (m *Manager) Stop() {
	m.mu.Lock()
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if w != nil {
		_ = w.Stop()
	}
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}
