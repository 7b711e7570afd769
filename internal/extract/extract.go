// Package extract pulls audio tracks out of video files with ffmpeg. Like
// classification it walks a folder of videos and tolerates per-file
// failures; unlike classification it runs ffmpeg, so everything is
// sequential to keep the machine responsive.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/backmassage/bitv/internal/config"
	"github.com/backmassage/bitv/internal/logging"
	"github.com/backmassage/bitv/internal/scan"
)

// Result summarizes one extraction batch.
type Result struct {
	Extracted int
	Failed    int
	Skipped   int
}

// Extractor runs audio extraction over folders of videos.
type Extractor struct {
	cfg *config.Config
	log *logrus.Logger

	// runFn executes one ffmpeg invocation and returns captured stderr.
	// Swapped in tests.
	runFn func(ctx context.Context, args []string) (string, error)
}

// New builds an extractor from the configuration.
func New(cfg *config.Config, log *logrus.Logger) *Extractor {
	if log == nil {
		log = logging.Silent()
	}
	return &Extractor{cfg: cfg, log: log, runFn: runFfmpeg}
}

// ExtractDir extracts the audio track of every video under dir into outDir
// (dir itself when empty). Existing outputs are skipped, failures are logged
// and counted, and the batch always runs to completion unless the context is
// canceled.
func (e *Extractor) ExtractDir(ctx context.Context, dir, outDir string) (Result, error) {
	var res Result

	abs, err := filepath.Abs(config.NormalizeDirArg(dir))
	if err == nil {
		dir = abs
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return res, fmt.Errorf("folder not found: %s", dir)
	}
	if outDir == "" {
		outDir = dir
	}

	files := scan.FindVideos(e.log, dir, e.cfg.Recursive)
	if len(files) == 0 {
		return res, fmt.Errorf("no video files found in %s", dir)
	}
	e.log.WithField("count", len(files)).Info("extracting audio tracks")

	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		out := e.outputPath(outDir, f)
		if _, err := os.Stat(out); err == nil {
			e.log.WithField("output", out).Debug("output exists, skipping")
			res.Skipped++
			continue
		}
		if err := e.extractOne(ctx, f, out); err != nil {
			e.log.WithError(err).Warnf("failed %s", filepath.Base(f))
			res.Failed++
			continue
		}
		e.log.WithField("output", out).Infof("extracted %s", filepath.Base(f))
		res.Extracted++
	}
	return res, nil
}

// outputPath maps a video file to its audio output path in outDir.
func (e *Extractor) outputPath(outDir, videoPath string) string {
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+e.cfg.AudioFormat.Extension())
}

// extractOne runs a single ffmpeg extraction, staging through a temp name so
// an interrupt never leaves a truncated output under the final name.
func (e *Extractor) extractOne(ctx context.Context, src, out string) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}

	tmp := out + ".part"
	args := e.buildArgs(src, tmp)
	stderr, err := e.runFn(ctx, args)
	if err != nil {
		os.Remove(tmp)
		if tail := stderrTail(stderr); tail != "" {
			return fmt.Errorf("ffmpeg: %s", tail)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return os.Rename(tmp, out)
}

// buildArgs assembles the ffmpeg command line for one extraction.
func (e *Extractor) buildArgs(src, out string) []string {
	args := []string{
		e.cfg.FfmpegPath,
		"-hide_banner", "-nostdin", "-y",
		"-i", src,
		"-vn",
	}
	switch e.cfg.AudioFormat {
	case config.AudioCopy:
		args = append(args, "-c:a", "copy")
	case config.AudioMP3:
		args = append(args, "-c:a", "libmp3lame", "-b:a", e.cfg.AudioBitrate)
	default:
		args = append(args, "-c:a", "aac", "-b:a", e.cfg.AudioBitrate)
	}
	// The ".part" staging name hides the container from ffmpeg, so force the
	// muxer from the real output extension.
	args = append(args, "-f", e.cfg.AudioFormat.Muxer(), out)
	return args
}

// runFfmpeg executes ffmpeg capturing stderr for failure diagnostics.
func runFfmpeg(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// stderrTail returns the last non-empty stderr line, where ffmpeg puts its
// actual error.
func stderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
