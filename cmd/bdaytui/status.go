package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/bdaytui/internal/countdown"
)

var statusOpts struct {
	format string
}

// statusReport is the structured output of the status command.
type statusReport struct {
	countdown.Snapshot `yaml:",inline"`
	Relative           string `json:"relative" yaml:"relative"`
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the countdown state",
	Long: `Show the target date, the remaining time and whether the countdown
has finished.

Formats:
  plain   Human-readable summary (default)
  json    Full state as JSON
  yaml    Full state as YAML
  waybar  Waybar custom module JSON, e.g.

  "custom/birthday": {
    "exec": "bdaytui status --format waybar",
    "interval": 1,
    "return-type": "json",
    "on-click": "bdaytui tui"
  }`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, waybar)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()
	snap := countdown.TakeSnapshot(now, countdown.Target(now))
	return writeStatus(cmd.OutOrStdout(), statusOpts.format, snap)
}

// writeStatus renders snap in the requested format.
func writeStatus(w io.Writer, format string, snap countdown.Snapshot) error {
	report := statusReport{
		Snapshot: snap,
		Relative: humanize.RelTime(snap.Target, snap.Now, "ago", "from now"),
	}

	switch format {
	case "", "plain":
		_, err := fmt.Fprintf(w, "target:    %s (%s)\ncountdown: %s\n",
			snap.Target.Format("Mon, 02 Jan 2006 15:04 MST"), report.Relative, snap.Countdown)
		return err

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()

	case "waybar":
		status := WaybarStatus{
			Text:    snap.Countdown,
			Alt:     "running",
			Tooltip: fmt.Sprintf("%s (%s)", snap.Target.Format("Mon, 02 Jan 2006"), report.Relative),
			Class:   "running",
		}
		if snap.Expired {
			status.Alt = "expired"
			status.Class = "expired"
		}
		return json.NewEncoder(w).Encode(status)

	default:
		return fmt.Errorf("unknown format %q (use plain, json, yaml or waybar)", format)
	}
}
