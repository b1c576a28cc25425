package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, "song.mp3", cfg.Audio.File)
	assert.True(t, cfg.Audio.Watch)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.True(t, cfg.TUI.Decorations)
	assert.True(t, cfg.TUI.AltScreen)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, "bdaytui", cfg.Notify.AppName)
	assert.NotEmpty(t, cfg.Greeting.Headline)
	assert.NotEmpty(t, cfg.Greeting.Tagline)
	assert.NotEmpty(t, cfg.Greeting.Caption)
	assert.NotEmpty(t, cfg.Greeting.Message)
	assert.NotEmpty(t, cfg.Greeting.SignOff)
	assert.NotEmpty(t, cfg.Greeting.Surprise)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[audio]
enabled = false
file = "~/music/party.ogg"
watch = false

[greeting]
headline = "Happy Birthday, Sam!"
message = "See you at eight."

[tui]
show_help = false
decorations = false
alt_screen = false

[notify]
enabled = true
app_name = "party"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, "~/music/party.ogg", cfg.Audio.File)
	assert.False(t, cfg.Audio.Watch)
	assert.Equal(t, "Happy Birthday, Sam!", cfg.Greeting.Headline)
	assert.Equal(t, "See you at eight.", cfg.Greeting.Message)
	assert.Equal(t, DefaultTagline, cfg.Greeting.Tagline)
	assert.False(t, cfg.TUI.ShowHelp)
	assert.False(t, cfg.TUI.Decorations)
	assert.False(t, cfg.TUI.AltScreen)
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, "party", cfg.Notify.AppName)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[notify]
enabled = true
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, DefaultNotifyApp, cfg.Notify.AppName)
	assert.Equal(t, DefaultAudioFile, cfg.Audio.File)
	assert.True(t, cfg.TUI.ShowHelp)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	err := os.WriteFile(path, []byte("[audio\nenabled = "), 0644)
	require.NoError(t, err)

	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Audio.File = "other.wav"
	cfg.Notify.Enabled = true

	err := cfg.Save(path)
	require.NoError(t, err)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/bdaytui/config.toml", ConfigPath())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "music/song.mp3"), ExpandPath("~/music/song.mp3"))
	assert.Equal(t, "song.mp3", ExpandPath("song.mp3"))
	assert.Equal(t, "", ExpandPath(""))

	cfg := DefaultConfig()
	assert.Equal(t, "song.mp3", cfg.AudioPath())
}
