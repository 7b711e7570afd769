// Package media holds the core value types of a classification run: the
// measured profile of one video file, the outcome of one classification
// attempt, and the aggregate statistics over a batch.
package media

import (
	"fmt"
	"path/filepath"

	"github.com/backmassage/bitv/internal/display"
)

// Info is the measured technical profile of one video file. It is created
// once by the probe adapter (or reconstructed from a persisted report) and
// treated as immutable afterwards.
//
// Bitrate is derived from file size and duration (SizeBytes*8/Duration),
// not from container metadata, and is 0 whenever Duration is 0.
type Info struct {
	Path      string  // normalized absolute path
	Duration  float64 // seconds
	Bitrate   float64 // bits/sec
	Width     int
	Height    int
	FrameRate float64
	SizeBytes int64
}

// NewInfo derives the bitrate from size and duration and returns the
// assembled profile. A zero duration yields a zero bitrate.
func NewInfo(path string, duration float64, width, height int, frameRate float64, sizeBytes int64) Info {
	var bitrate float64
	if duration > 0 {
		bitrate = float64(sizeBytes) * 8 / duration
	}
	return Info{
		Path:      path,
		Duration:  duration,
		Bitrate:   bitrate,
		Width:     width,
		Height:    height,
		FrameRate: frameRate,
		SizeBytes: sizeBytes,
	}
}

// Filename returns the base name of the file.
func (i Info) Filename() string {
	return filepath.Base(i.Path)
}

// BitrateMbps returns the bitrate in megabits per second.
func (i Info) BitrateMbps() float64 {
	if i.Bitrate <= 0 {
		return 0
	}
	return i.Bitrate / 1_000_000
}

// SizeMB returns the file size in mebibytes.
func (i Info) SizeMB() float64 {
	if i.SizeBytes <= 0 {
		return 0
	}
	return float64(i.SizeBytes) / (1024 * 1024)
}

// Resolution returns "WxH" with a named suffix for exact 4K/1080p/720p
// dimensions (e.g. "1920x1080 (1080p Full HD)").
func (i Info) Resolution() string {
	switch {
	case i.Width == 3840 && i.Height == 2160:
		return fmt.Sprintf("%dx%d (4K UHD)", i.Width, i.Height)
	case i.Width == 1920 && i.Height == 1080:
		return fmt.Sprintf("%dx%d (1080p Full HD)", i.Width, i.Height)
	case i.Width == 1280 && i.Height == 720:
		return fmt.Sprintf("%dx%d (720p HD)", i.Width, i.Height)
	default:
		return fmt.Sprintf("%dx%d", i.Width, i.Height)
	}
}

// DurationFormatted returns the duration as "HH:MM:SS".
func (i Info) DurationFormatted() string {
	return display.FormatDuration(i.Duration)
}

// SizeFormatted returns the size in human-readable form.
func (i Info) SizeFormatted() string {
	return display.FormatBytes(i.SizeBytes)
}

// BitrateFormatted returns the bitrate in human-readable form.
func (i Info) BitrateFormatted() string {
	return display.FormatBitrate(i.Bitrate)
}
