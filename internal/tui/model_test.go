package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bdaytui/internal/config"
	"github.com/jmylchreest/bdaytui/internal/countdown"
	"github.com/jmylchreest/bdaytui/internal/playback"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time                          { return c.now }
func (c *stubClock) NewTicker(time.Duration) countdown.Ticker { return nil }

type stubResource struct {
	playErr error
	errs    chan error
}

func (r *stubResource) Play(context.Context) error  { return r.playErr }
func (r *stubResource) Pause(context.Context) error { return nil }
func (r *stubResource) Errors() <-chan error        { return r.errs }

type stubNotifier struct {
	summaries []string
	err       error
}

func (n *stubNotifier) Notify(_ context.Context, summary, _ string) (uint32, error) {
	n.summaries = append(n.summaries, summary)
	return 1, n.err
}

var target = time.Date(2025, time.April, 8, 0, 0, 0, 0, time.UTC)

type fixture struct {
	clock    *stubClock
	res      *stubResource
	notifier *stubNotifier
	model    Model
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		clock:    &stubClock{now: now},
		res:      &stubResource{errs: make(chan error, 1)},
		notifier: &stubNotifier{},
	}

	cfg := config.DefaultConfig()
	f.model = New(Options{
		Config:     cfg,
		Engine:     countdown.NewEngine(target, f.clock, nil),
		Controller: playback.NewController(f.res, nil),
		Notifier:   f.notifier,
	})
	f.model = f.update(t, tea.WindowSizeMsg{Width: 120, Height: 40})
	return f
}

func (f *fixture) update(t *testing.T, msg tea.Msg) Model {
	t.Helper()
	m, _ := f.send(t, msg)
	return m
}

func (f *fixture) send(t *testing.T, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := f.model.Update(msg)
	m, ok := updated.(Model)
	require.True(t, ok)
	f.model = m
	return m, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_InitialCountdown(t *testing.T) {
	f := newFixture(t, time.Date(2025, time.April, 7, 23, 0, 0, 0, time.UTC))

	assert.Equal(t, "0d 1h 0m 0s", f.model.countdown)
	assert.NotNil(t, f.model.Init())
}

func TestModel_TickRearmsWhileRunning(t *testing.T) {
	f := newFixture(t, target.Add(-2*time.Second))

	f.clock.now = target.Add(-time.Second)
	m, cmd := f.send(t, tickMsg(f.clock.now))

	assert.Equal(t, "0d 0h 0m 1s", m.countdown)
	assert.NotNil(t, cmd)
}

func TestModel_TickStopsOnExpiryAndNotifiesOnce(t *testing.T) {
	f := newFixture(t, target.Add(-time.Second))

	f.clock.now = target
	m, cmd := f.send(t, tickMsg(f.clock.now))
	assert.Equal(t, countdown.CelebrationText, m.countdown)
	require.NotNil(t, cmd, "notification command")

	msg := cmd()
	assert.Equal(t, notifiedMsg{}, msg)
	assert.Equal(t, []string{countdown.CelebrationText}, f.notifier.summaries)

	// A stray tick after expiry neither re-arms nor notifies again.
	f.clock.now = target.Add(time.Hour)
	m, cmd = f.send(t, tickMsg(f.clock.now))
	assert.Nil(t, cmd)
	assert.Equal(t, countdown.CelebrationText, m.countdown)
	assert.Len(t, f.notifier.summaries, 1)
}

func TestModel_NotificationErrorIsLogged(t *testing.T) {
	f := newFixture(t, target.Add(-time.Second))
	f.notifier.err = errors.New("no session bus")

	f.clock.now = target
	_, cmd := f.send(t, tickMsg(f.clock.now))
	require.NotNil(t, cmd)

	_, cmd = f.send(t, cmd())
	assert.Nil(t, cmd)
}

func TestModel_ToggleMusic(t *testing.T) {
	f := newFixture(t, target.Add(-time.Hour))
	f.update(t, frameMsg(f.model.start.Add(3*time.Second)))

	assert.Contains(t, f.model.View(), "Play Music")

	_, cmd := f.send(t, keyRune('m'))
	require.NotNil(t, cmd)
	assert.False(t, f.model.player.IsPlaying(), "state changes only when the result arrives")

	f.update(t, cmd())
	assert.True(t, f.model.player.IsPlaying())
	assert.Contains(t, f.model.View(), "Pause Music")

	_, cmd = f.send(t, keyRune('m'))
	f.update(t, cmd())
	assert.False(t, f.model.player.IsPlaying())
}

func TestModel_ToggleFailureStaysPaused(t *testing.T) {
	f := newFixture(t, target.Add(-time.Hour))
	f.res.playErr = errors.New("autoplay blocked")

	_, cmd := f.send(t, keyRune('m'))
	f.update(t, cmd())

	assert.False(t, f.model.player.IsPlaying())
}

func TestModel_ResourceErrorForcesPaused(t *testing.T) {
	f := newFixture(t, target.Add(-time.Hour))

	_, cmd := f.send(t, keyRune('m'))
	f.update(t, cmd())
	require.True(t, f.model.player.IsPlaying())

	f.res.errs <- errors.New("decode failure")
	msg := f.model.waitForResourceError()
	require.IsType(t, resourceErrorMsg{}, msg)

	_, cmd = f.send(t, msg)
	assert.False(t, f.model.player.IsPlaying())
	assert.NotNil(t, cmd, "keeps waiting for further errors")
}

func TestModel_SurpriseToggle(t *testing.T) {
	f := newFixture(t, target.Add(-time.Hour))
	f.update(t, frameMsg(f.model.start.Add(3*time.Second)))

	assert.NotContains(t, f.model.View(), "You're My Everything")

	f.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, f.model.View(), "You're My Everything")

	f.update(t, keyRune('s'))
	assert.NotContains(t, f.model.View(), "You're My Everything")
}

func TestModel_IntroStages(t *testing.T) {
	f := newFixture(t, time.Date(2025, time.April, 7, 23, 0, 0, 0, time.UTC))

	view := f.model.View()
	assert.Contains(t, view, "Happy Birthday in Advance")
	assert.NotContains(t, view, "0d 1h 0m 0s")

	f.update(t, frameMsg(f.model.start.Add(1600*time.Millisecond)))
	view = f.model.View()
	assert.Contains(t, view, "0d 1h 0m 0s")
	assert.NotContains(t, view, "Play Music")

	f.update(t, frameMsg(f.model.start.Add(2*time.Second)))
	assert.Contains(t, f.model.View(), "Play Music")
}

func TestModel_FrameStopsWithoutDecorations(t *testing.T) {
	f := newFixture(t, target.Add(-time.Hour))
	f.model.decorations = false

	_, cmd := f.send(t, frameMsg(f.model.start.Add(500*time.Millisecond)))
	assert.NotNil(t, cmd, "intro still running")

	_, cmd = f.send(t, frameMsg(f.model.start.Add(5*time.Second)))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, f.model.View())
}

func TestModel_HelpAndQuit(t *testing.T) {
	f := newFixture(t, target.Add(-time.Hour))
	showAll := f.model.help.ShowAll

	f.update(t, keyRune('?'))
	assert.Equal(t, !showAll, f.model.help.ShowAll)

	_, cmd := f.send(t, keyRune('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_NotReady(t *testing.T) {
	m := New(Options{
		Engine:     countdown.NewEngine(target, &stubClock{now: target}, nil),
		Controller: playback.NewController(&stubResource{}, nil),
	})

	assert.Equal(t, "Initializing...", m.View())
	assert.Equal(t, countdown.CelebrationText, m.countdown)
}

func TestMusicLabel(t *testing.T) {
	assert.Equal(t, "🎵 Play Music", MusicLabel(false))
	assert.Equal(t, "🔇 Pause Music", MusicLabel(true))
}
