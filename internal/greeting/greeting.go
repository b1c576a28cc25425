// Package greeting holds the on-screen texts, the surprise message toggle
// and the keyframe animation of the background decorations.
package greeting

import (
	"sync/atomic"
	"time"

	"github.com/jmylchreest/bdaytui/internal/config"
)

// Texts are the strings rendered by the greeting screen.
type Texts struct {
	Headline string
	Tagline  string
	Caption  string
	Message  string
	SignOff  string
	Surprise string
}

// TextsFromConfig fills empty config fields with the defaults.
func TextsFromConfig(cfg config.GreetingConfig) Texts {
	return Texts{
		Headline: orDefault(cfg.Headline, config.DefaultHeadline),
		Tagline:  orDefault(cfg.Tagline, config.DefaultTagline),
		Caption:  orDefault(cfg.Caption, config.DefaultCaption),
		Message:  orDefault(cfg.Message, config.DefaultMessage),
		SignOff:  orDefault(cfg.SignOff, config.DefaultSignOff),
		Surprise: orDefault(cfg.Surprise, config.DefaultSurpriseBtn),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Reveal is the show/hide state of the surprise message. Hidden initially.
type Reveal struct {
	visible atomic.Bool
}

// Toggle flips visibility and returns the new state.
func (r *Reveal) Toggle() bool {
	for {
		old := r.visible.Load()
		if r.visible.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Visible reports whether the message is shown.
func (r *Reveal) Visible() bool {
	return r.visible.Load()
}

// Stage is how far the intro fade-in has progressed.
type Stage int

const (
	StageHeadline Stage = iota
	StageTagline
	StageCountdown
	StageButtons
)

// Intro delays after startup at which each stage becomes visible.
var introDelays = [...]time.Duration{
	StageHeadline:  0,
	StageTagline:   time.Second,
	StageCountdown: 1500 * time.Millisecond,
	StageButtons:   2 * time.Second,
}

// StageAt returns the latest stage visible after elapsed.
func StageAt(elapsed time.Duration) Stage {
	stage := StageHeadline
	for s, d := range introDelays {
		if elapsed >= d {
			stage = Stage(s)
		}
	}
	return stage
}

// IntroDone reports whether every stage is visible.
func IntroDone(elapsed time.Duration) bool {
	return StageAt(elapsed) == StageButtons
}
