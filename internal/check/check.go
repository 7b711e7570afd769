// Package check provides system diagnostics (the check command) and
// pre-run dependency validation for ffprobe and ffmpeg.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/backmassage/bitv/internal/config"
)

// Sentinel errors returned by the pre-run validators when a required tool is
// missing.
var (
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
)

// RunCheck runs the interactive diagnostics flow: prints availability and
// versions of ffprobe and ffmpeg and tests the configured audio encoder.
// Informational only, it does not stop on failure.
func RunCheck(cfg *config.Config, log *logrus.Logger) {
	log.Info("=== System Check ===")

	checkTool(log, "ffprobe", cfg.FfprobePath)
	checkTool(log, "ffmpeg", cfg.FfmpegPath)
	checkAudioEncoder(cfg, log)
}

// EnsureProbe verifies ffprobe is available; analysis and classification
// need nothing else.
func EnsureProbe(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FfprobePath); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// EnsureFfmpeg verifies ffmpeg is available for audio extraction.
func EnsureFfmpeg(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FfmpegPath); err != nil {
		return ErrFfmpegNotFound
	}
	return nil
}

// checkTool verifies a tool is on PATH and logs its version line.
func checkTool(log *logrus.Logger, name, bin string) {
	if _, err := exec.LookPath(bin); err != nil {
		log.Errorf("%s not found (%s)", name, bin)
		return
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warnf("%s found but -version failed: %v", name, err)
		return
	}
	log.Infof("%s: %s", name, firstLine(string(out)))
}

// checkAudioEncoder runs a minimal encode of a generated tone to verify the
// configured audio codec works.
func checkAudioEncoder(cfg *config.Config, log *logrus.Logger) {
	codec := "aac"
	switch cfg.AudioFormat {
	case config.AudioMP3:
		codec = "libmp3lame"
	case config.AudioCopy:
		log.Info("audio format is copy, no encoder needed")
		return
	}
	log.Infof("Testing %s encoder...", codec)
	if runSilent(cfg.FfmpegPath,
		"-hide_banner", "-nostdin",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", codec, "-f", "null", "-",
	) {
		log.Infof("%s encoder works", codec)
	} else {
		log.Errorf("%s encoder test failed", codec)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}

// runSilent runs a command and reports whether it exited with status 0.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	return cmd.Run() == nil
}
