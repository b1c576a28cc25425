// Package audio provides the looping background music resource.
// It uses the beep library to decode WAV, OGG and MP3 files and plays
// them through a pausable control at a fixed volume.
package audio
