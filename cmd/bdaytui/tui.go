package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bdaytui/internal/audio"
	"github.com/jmylchreest/bdaytui/internal/config"
	"github.com/jmylchreest/bdaytui/internal/countdown"
	"github.com/jmylchreest/bdaytui/internal/notify"
	"github.com/jmylchreest/bdaytui/internal/playback"
	"github.com/jmylchreest/bdaytui/internal/tui"
)

var tuiOpts struct {
	mute bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive greeting",
	Long: `Launch the interactive birthday greeting.

The screen shows:
  - A countdown to April 8, updated every second
  - Drifting background decorations
  - A surprise message you can reveal
  - Looping background music (song.mp3 by default)

Key bindings:
  enter, s    Show/hide the surprise message
  space, m    Play/pause music
  ?           Show all keys
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.mute, "mute", false,
		"Start without an audio device (music cannot be played)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	c := getConfig()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logging to the terminal would corrupt the screen.
	log := logger
	if globalOpts.logFile == "" || log == nil {
		log = newLogger(io.Discard, slog.LevelWarn)
	}

	res, release := newAudioResource(ctx, c, log)
	defer release()

	engine := countdown.NewEngine(countdown.Target(time.Now()), countdown.RealClock{}, log)
	controller := playback.NewController(res, log)

	var notifier tui.Notifier
	if c.Notify.Enabled {
		notifier = notify.New(c.Notify.AppName, log)
	}

	return tui.Run(tui.RunOptions{
		Options: tui.Options{
			Context:    ctx,
			Config:     c,
			Engine:     engine,
			Controller: controller,
			Notifier:   notifier,
			Logger:     log,
		},
		AltScreen: c.TUI.AltScreen,
	})
}

// newAudioResource returns the music resource and its release function.
func newAudioResource(ctx context.Context, c *config.Config, log *slog.Logger) (playback.Resource, func()) {
	if !c.Audio.Enabled || tuiOpts.mute {
		return audio.NewSilent(nil), func() {}
	}

	m := audio.NewManager(c.AudioPath(), c.Audio.Watch, log)
	if err := m.Start(ctx); err != nil {
		log.Warn("audio file watching disabled", "error", err)
	}
	return m, m.Stop
}
