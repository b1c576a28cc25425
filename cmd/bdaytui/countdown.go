package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bdaytui/internal/countdown"
	"github.com/jmylchreest/bdaytui/internal/notify"
)

var countdownOpts struct {
	watch bool
}

var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Print the time left until the birthday",
	Long: `Print the countdown as "Nd Hh Mm Ss", or the celebration text once
April 8 has arrived.

With --watch the countdown is printed every second until the target is
reached or the command is interrupted.`,
	RunE: runCountdown,
}

func init() {
	rootCmd.AddCommand(countdownCmd)

	countdownCmd.Flags().BoolVarP(&countdownOpts.watch, "watch", "w", false,
		"Print once per second until the target is reached")
}

func runCountdown(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	engine := countdown.NewEngine(countdown.Target(time.Now()), countdown.RealClock{}, logger)

	if !countdownOpts.watch {
		_, err := fmt.Fprintln(out, engine.Tick())
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ranBeforeTarget := false
	err := engine.Run(ctx, func(s string) {
		if !engine.Expired() {
			ranBeforeTarget = true
		}
		fmt.Fprintln(out, s)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}

	if ranBeforeTarget && getConfig().Notify.Enabled {
		n := notify.New(getConfig().Notify.AppName, logger)
		if _, err := n.Notify(ctx, countdown.CelebrationText, getConfig().Greeting.Headline); err != nil {
			logger.Warn("failed to send desktop notification", "error", err)
		}
	}
	return nil
}
