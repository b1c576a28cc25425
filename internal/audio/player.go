package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultVolume is the playback volume set at startup (0.0 to 1.0).
const DefaultVolume = 0.5

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNotLoaded         = errors.New("audio not loaded")
)

// Player decodes one sound file and loops it through the speaker
// behind a pausable control.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	volume float64

	// Whether speaker has been initialized
	initialized bool
	sampleRate  beep.SampleRate

	// ctrl is registered with the speaker once and reused across reloads.
	ctrl *beep.Ctrl
}

// NewPlayer creates a new audio player.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		logger:     logger,
		volume:     DefaultVolume,
		sampleRate: beep.SampleRate(44100),
	}
}

// Volume returns the playback volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Load decodes path and installs it as the looping stream. The first
// load registers a paused control with the speaker; later loads swap the
// stream in place and keep the paused/playing state.
func (p *Player) Load(path string) error {
	buffer, err := decodeFile(path)
	if err != nil {
		return err
	}

	if err := p.ensureInitialized(buffer.Format().SampleRate); err != nil {
		return err
	}

	streamer := p.loopStreamer(buffer)

	p.mu.Lock()
	if p.ctrl == nil {
		p.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
		ctrl := p.ctrl
		p.mu.Unlock()

		speaker.Play(ctrl)
		p.logger.Debug("sound loaded", "path", path, "duration", buffer.Format().SampleRate.D(buffer.Len()))
		return nil
	}
	ctrl := p.ctrl
	p.mu.Unlock()

	speaker.Lock()
	ctrl.Streamer = streamer
	speaker.Unlock()

	p.logger.Debug("sound reloaded", "path", path)
	return nil
}

// Loaded reports whether a stream is installed.
func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil
}

// SetPaused pauses or resumes the looping stream.
func (p *Player) SetPaused(paused bool) error {
	p.mu.Lock()
	ctrl := p.ctrl
	p.mu.Unlock()

	if ctrl == nil {
		return ErrNotLoaded
	}

	speaker.Lock()
	ctrl.Paused = paused
	speaker.Unlock()
	return nil
}

// decodeFile loads and decodes a sound file into a buffer.
func decodeFile(path string) (*beep.Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".ogg", ".mp3":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("failed to decode sound: %s is empty", path)
	}

	return buffer, nil
}

// ensureInitialized initializes the speaker if not already done.
func (p *Player) ensureInitialized(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	bufferSize := sampleRate.N(time.Millisecond * 100)

	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", sampleRate)
	return nil
}

// loopStreamer builds an endless, volume-adjusted stream over buffer.
func (p *Player) loopStreamer(buffer *beep.Buffer) beep.Streamer {
	p.mu.Lock()
	volume := p.volume
	sampleRate := p.sampleRate
	p.mu.Unlock()

	var streamer beep.Streamer = beep.Loop(-1, buffer.Streamer(0, buffer.Len()))

	if buffer.Format().SampleRate != sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, sampleRate, streamer)
	}

	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeExponent(volume),
			Silent:   volume <= 0,
		}
	}

	return streamer
}

// Close stops all playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Clear()
		speaker.Close()
		p.initialized = false
	}

	p.ctrl = nil
	p.logger.Debug("audio player closed")
}

// volumeExponent converts a linear volume (0-1) to a base-2 exponent
// for effects.Volume: 0.5 is -1, 0.25 is -2.
func volumeExponent(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log2(volume)
}
