// Package tui provides the BubbleTea-based birthday greeting screen.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/bdaytui/internal/config"
	"github.com/jmylchreest/bdaytui/internal/countdown"
	"github.com/jmylchreest/bdaytui/internal/greeting"
	"github.com/jmylchreest/bdaytui/internal/playback"
)

// frameInterval is the redraw period of the background animation.
const frameInterval = 100 * time.Millisecond

// Notifier posts a desktop notification.
type Notifier interface {
	Notify(ctx context.Context, summary, body string) (uint32, error)
}

// Model is the main TUI model.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	// Collaborators
	engine   *countdown.Engine
	player   *playback.Controller
	reveal   *greeting.Reveal
	notifier Notifier

	texts       greeting.Texts
	decorations bool

	// Components
	help help.Model
	keys KeyMap

	// State
	countdown string
	notified  bool
	start     time.Time
	elapsed   time.Duration
	width     int
	height    int
	ready     bool
}

// Options configures a Model.
type Options struct {
	Context    context.Context
	Config     *config.Config
	Engine     *countdown.Engine
	Controller *playback.Controller
	Notifier   Notifier // nil disables the expiry notification
	Logger     *slog.Logger
}

// New creates a new TUI model. The countdown is computed once up front so
// the first frame is never blank.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := help.New()
	h.ShowAll = cfg.TUI.ShowHelp

	return Model{
		ctx:         ctx,
		logger:      logger,
		engine:      opts.Engine,
		player:      opts.Controller,
		reveal:      &greeting.Reveal{},
		notifier:    opts.Notifier,
		texts:       greeting.TextsFromConfig(cfg.Greeting),
		decorations: cfg.TUI.Decorations,
		help:        h,
		keys:        DefaultKeyMap(),
		countdown:   opts.Engine.Tick(),
		start:       time.Now(),
	}
}

type tickMsg time.Time

type frameMsg time.Time

type toggleResultMsg playback.Result

type resourceErrorMsg struct {
	err error
}

type notifiedMsg struct {
	err error
}

// Init starts the countdown tick, the animation and the resource error wait.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frame(), m.waitForResourceError}
	if !m.engine.Expired() {
		cmds = append(cmds, m.tick())
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(countdown.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// waitForResourceError blocks until the audio resource reports a failure.
func (m Model) waitForResourceError() tea.Msg {
	ch := m.player.Errors()
	if ch == nil {
		return nil
	}
	err, ok := <-ch
	if !ok {
		return nil
	}
	return resourceErrorMsg{err: err}
}

// requestToggle issues the play/pause request off the event loop; the
// result comes back as a toggleResultMsg.
func (m Model) requestToggle() tea.Cmd {
	ctx, player := m.ctx, m.player
	return func() tea.Msg {
		return toggleResultMsg(player.Request(ctx))
	}
}

func (m Model) sendNotification() tea.Cmd {
	ctx, n := m.ctx, m.notifier
	summary, body := m.countdown, m.texts.Headline
	return func() tea.Msg {
		_, err := n.Notify(ctx, summary, body)
		return notifiedMsg{err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		m.countdown = m.engine.Tick()
		if !m.engine.Expired() {
			return m, m.tick()
		}
		// Terminal state: the tick is not re-armed.
		if m.notifier != nil && !m.notified {
			m.notified = true
			return m, m.sendNotification()
		}
		return m, nil

	case frameMsg:
		m.elapsed = time.Time(msg).Sub(m.start)
		if m.decorations || !greeting.IntroDone(m.elapsed) {
			return m, m.frame()
		}
		return m, nil

	case toggleResultMsg:
		_ = m.player.Apply(playback.Result(msg))
		return m, nil

	case resourceErrorMsg:
		_ = m.player.ResourceError(msg.err)
		return m, m.waitForResourceError

	case notifiedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to send desktop notification", "error", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Music):
		return m, m.requestToggle()
	case key.Matches(msg, m.keys.Surprise):
		m.reveal.Toggle()
		return m, nil
	}
	return m, nil
}

// RunOptions configures the TUI.
type RunOptions struct {
	Options
	AltScreen bool
}

// Run starts the TUI and blocks until it exits or the context is done.
func Run(opts RunOptions) error {
	m := New(opts.Options)

	progOpts := []tea.ProgramOption{tea.WithContext(m.ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
