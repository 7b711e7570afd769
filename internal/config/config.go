// Package config holds runtime configuration: defaults, optional TOML config
// file, and validation. CLI flags override file values; file values override
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AudioFormat selects the audio extraction output codec.
type AudioFormat string

const (
	AudioAAC  AudioFormat = "aac"  // Encode to AAC in .m4a (default).
	AudioMP3  AudioFormat = "mp3"  // Encode to MP3 via libmp3lame.
	AudioCopy AudioFormat = "copy" // Stream-copy the source track into .mka.
)

// Extension returns the output file extension for the format.
func (f AudioFormat) Extension() string {
	switch f {
	case AudioMP3:
		return ".mp3"
	case AudioCopy:
		// Matroska audio holds any codec without re-encoding.
		return ".mka"
	default:
		return ".m4a"
	}
}

// Muxer returns the ffmpeg format name matching [Extension], for when the
// output is staged under a name ffmpeg cannot infer the container from.
func (f AudioFormat) Muxer() string {
	switch f {
	case AudioMP3:
		return "mp3"
	case AudioCopy:
		return "matroska"
	default:
		return "ipod"
	}
}

// Config holds all runtime settings. It is populated by [Default], optionally
// merged from a TOML file by [ApplyFile], and finally overridden by CLI flags
// before being passed (by pointer) to the engines.
type Config struct {
	// Tier table parameters.
	StepMegabits float64 // Default: 5 Mbps per tier.
	Levels       int     // Default: 10 finite tiers.

	// Behavior flags.
	Recursive bool // Default: false. Scan subdirectories.
	Move      bool // Default: false (copy).

	// Analysis concurrency and probing.
	Jobs         int           // Default: 4 concurrent probes (analyze only).
	ProbeTimeout time.Duration // Default: 30s per ffprobe call.

	// External tools.
	FfprobePath string // Default: "ffprobe" (resolved via PATH).
	FfmpegPath  string // Default: "ffmpeg".

	// Audio extraction.
	AudioFormat  AudioFormat // Default: "aac".
	AudioBitrate string      // Default: "192k".

	// Logging.
	LogLevel string // Default: "info".
	LogFile  string // Optional additional log sink.
}

// Default returns a Config with the stock defaults of the original bitv tool.
func Default() Config {
	return Config{
		StepMegabits: 5,
		Levels:       10,
		Recursive:    false,
		Move:         false,
		Jobs:         4,
		ProbeTimeout: 30 * time.Second,
		FfprobePath:  "ffprobe",
		FfmpegPath:   "ffmpeg",
		AudioFormat:  AudioAAC,
		AudioBitrate: "192k",
		LogLevel:     "info",
	}
}

// DefaultFilePath returns the conventional config file location
// (~/.config/bitv/config.toml on Linux). Empty when the user config dir
// cannot be determined.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bitv", "config.toml")
}

// fileConfig mirrors the TOML schema. Pointer fields distinguish "absent"
// from zero values so the file only overrides what it sets.
type fileConfig struct {
	Step                *float64 `toml:"step"`
	Levels              *int     `toml:"levels"`
	Recursive           *bool    `toml:"recursive"`
	Jobs                *int     `toml:"jobs"`
	ProbeTimeoutSeconds *int     `toml:"probe_timeout_seconds"`
	Ffprobe             *string  `toml:"ffprobe"`
	Ffmpeg              *string  `toml:"ffmpeg"`

	Audio struct {
		Format  *string `toml:"format"`
		Bitrate *string `toml:"bitrate"`
	} `toml:"audio"`

	Log struct {
		Level *string `toml:"level"`
		File  *string `toml:"file"`
	} `toml:"log"`
}

// ApplyFile merges settings from a TOML file into c. A missing file is not
// an error (the file is optional); a malformed file is.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Step != nil {
		c.StepMegabits = *fc.Step
	}
	if fc.Levels != nil {
		c.Levels = *fc.Levels
	}
	if fc.Recursive != nil {
		c.Recursive = *fc.Recursive
	}
	if fc.Jobs != nil {
		c.Jobs = *fc.Jobs
	}
	if fc.ProbeTimeoutSeconds != nil {
		c.ProbeTimeout = time.Duration(*fc.ProbeTimeoutSeconds) * time.Second
	}
	if fc.Ffprobe != nil {
		c.FfprobePath = *fc.Ffprobe
	}
	if fc.Ffmpeg != nil {
		c.FfmpegPath = *fc.Ffmpeg
	}
	if fc.Audio.Format != nil {
		c.AudioFormat = AudioFormat(*fc.Audio.Format)
	}
	if fc.Audio.Bitrate != nil {
		c.AudioBitrate = *fc.Audio.Bitrate
	}
	if fc.Log.Level != nil {
		c.LogLevel = *fc.Log.Level
	}
	if fc.Log.File != nil {
		c.LogFile = *fc.Log.File
	}
	return nil
}

// Validate checks all parameter constraints up front so a bad configuration
// is fatal before any file is touched.
func (c *Config) Validate() error {
	if c.StepMegabits <= 0 {
		return errors.New("step must be greater than 0 Mbps")
	}
	if c.Levels < 1 {
		return errors.New("levels must be at least 1")
	}
	if c.Jobs < 1 {
		return errors.New("jobs must be at least 1")
	}
	if c.ProbeTimeout <= 0 {
		return errors.New("probe timeout must be positive")
	}

	switch c.AudioFormat {
	case AudioAAC, AudioMP3, AudioCopy:
		// valid
	default:
		return errors.New("invalid audio format (use 'aac', 'mp3' or 'copy')")
	}

	normalized, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		return err
	}
	c.AudioBitrate = normalized
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "192", "192k", "192K", "192kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 192k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}
