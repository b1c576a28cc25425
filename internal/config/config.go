// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultAudioFile   = "song.mp3"
	DefaultNotifyApp   = "bdaytui"
	DefaultHeadline    = "✨ Happy Birthday in Advance! ✨"
	DefaultTagline     = "Since you came into my life, everything has changed for the better. 💖"
	DefaultCaption     = "🎂 Countdown to Your Special Day 🎂"
	DefaultMessage     = "I love you the most! 💕 You make my life magical. Keep dancing, keep singing, and keep being amazing! 🎶💃"
	DefaultSignOff     = "🌟 You're My Everything! 🌟"
	DefaultSurpriseBtn = "🎁 Click for a Surprise"
)

// Config represents the bdaytui configuration.
type Config struct {
	Audio    AudioConfig    `toml:"audio"`
	Greeting GreetingConfig `toml:"greeting"`
	TUI      TUIConfig      `toml:"tui"`
	Notify   NotifyConfig   `toml:"notify"`
}

// AudioConfig holds background music settings.
// Volume is not configurable; playback always starts at 50%.
type AudioConfig struct {
	Enabled bool   `toml:"enabled"`
	File    string `toml:"file"`  // Relative to the working directory; ~ is expanded
	Watch   bool   `toml:"watch"` // Reload or pause when the file changes on disk
}

// GreetingConfig holds the texts shown on screen.
type GreetingConfig struct {
	Headline string `toml:"headline"`
	Tagline  string `toml:"tagline"`
	Caption  string `toml:"caption"`
	Message  string `toml:"message"`
	SignOff  string `toml:"sign_off"`
	Surprise string `toml:"surprise"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp    bool `toml:"show_help"`
	Decorations bool `toml:"decorations"` // Drifting background orbs
	AltScreen   bool `toml:"alt_screen"`
}

// NotifyConfig controls the desktop notification sent when the countdown ends.
type NotifyConfig struct {
	Enabled bool   `toml:"enabled"`
	AppName string `toml:"app_name"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			Enabled: true,
			File:    DefaultAudioFile,
			Watch:   true,
		},
		Greeting: GreetingConfig{
			Headline: DefaultHeadline,
			Tagline:  DefaultTagline,
			Caption:  DefaultCaption,
			Message:  DefaultMessage,
			SignOff:  DefaultSignOff,
			Surprise: DefaultSurpriseBtn,
		},
		TUI: TUIConfig{
			ShowHelp:    true,
			Decorations: true,
			AltScreen:   true,
		},
		Notify: NotifyConfig{
			Enabled: false,
			AppName: DefaultNotifyApp,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "bdaytui", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AudioPath returns the audio file path with ~ expanded.
func (c *Config) AudioPath() string {
	return ExpandPath(c.Audio.File)
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
