package audio

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the audio file for rewrites and removals.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	path    string

	onChange func()
	onRemove func()

	done    chan struct{}
	exited  chan struct{}
	running bool
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		logger:   logger,
		path:     path,
		onChange: func() {},
		onRemove: func() {},
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}, nil
}

// OnChange sets the callback invoked when the file is written or created.
func (w *Watcher) OnChange(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// OnRemove sets the callback invoked when the file is removed or renamed.
func (w *Watcher) OnRemove(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRemove = fn
}

// Start begins watching. It stops when ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory containing the file (more reliable for writes)
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}

	go w.watch(ctx)

	w.logger.Debug("audio watcher started", "path", w.path)
	return nil
}

// watch is the main watch loop.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.exited)

	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			w.mu.Lock()
			onChange, onRemove := w.onChange, w.onRemove
			w.mu.Unlock()

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				w.logger.Debug("audio file removed", "path", w.path)
				onRemove()
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				w.logger.Debug("audio file changed", "path", w.path)
				onChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("audio watcher error", "error", err)

		case <-ctx.Done():
			return

		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher and waits for the loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	close(w.done)
	w.mu.Unlock()

	<-w.exited
	return w.watcher.Close()
}
