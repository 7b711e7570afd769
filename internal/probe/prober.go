// Package probe wraps the external ffprobe call and converts its output into
// a [media.Info]. It is the only environment-dependent step of a
// classification run; everything downstream works from the returned value.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/backmassage/bitv/internal/media"
	"github.com/backmassage/bitv/internal/scan"
)

// Func is the probing function signature the engines depend on. Production
// code uses [Prober.Probe]; tests substitute a fake.
type Func func(ctx context.Context, path string) (media.Info, error)

// Prober runs ffprobe with a per-call timeout.
type Prober struct {
	Binary  string
	Timeout time.Duration
}

// New returns a Prober for the given ffprobe binary and timeout.
func New(binary string, timeout time.Duration) *Prober {
	return &Prober{Binary: binary, Timeout: timeout}
}

// Probe extracts width, height, frame rate and frame count from path via a
// single ffprobe JSON call, then derives duration and bitrate from the frame
// count and the on-disk byte size. It performs no filesystem writes.
//
// Failures come back as a typed *Error: NotFound, UnsupportedFormat,
// Unopenable, or Timeout.
func (p *Prober) Probe(ctx context.Context, path string) (media.Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return media.Info{}, &Error{Kind: NotFound, Path: abs, Err: err}
	}
	if !scan.IsVideo(abs) {
		return media.Info{}, &Error{Kind: UnsupportedFormat, Path: abs}
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.Binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		abs,
	)
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return media.Info{}, &Error{Kind: Timeout, Path: abs, Err: ctx.Err()}
		}
		return media.Info{}, &Error{Kind: Unopenable, Path: abs, Err: err}
	}

	res, err := ParseJSON(out)
	if err != nil {
		return media.Info{}, &Error{Kind: Unopenable, Path: abs, Err: err}
	}
	if !res.HasVideo {
		return media.Info{}, &Error{Kind: Unopenable, Path: abs, Err: errors.New("no video stream")}
	}

	return res.BuildInfo(abs, fi.Size()), nil
}

// Result holds the probed stream properties needed to assemble a
// [media.Info]. Duration prefers the frame count over the container value
// when both are usable.
type Result struct {
	HasVideo  bool
	Width     int
	Height    int
	FrameRate float64
	Frames    int64
	Duration  float64 // container-declared, seconds
}

// BuildInfo derives duration (frames/fps when available, container duration
// otherwise) and delegates bitrate derivation to [media.NewInfo].
func (r *Result) BuildInfo(path string, sizeBytes int64) media.Info {
	duration := r.Duration
	if r.Frames > 0 && r.FrameRate > 0 {
		duration = float64(r.Frames) / r.FrameRate
	}
	return media.NewInfo(path, duration, r.Width, r.Height, r.FrameRate, sizeBytes)
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	res := &Result{Duration: parseFloat(raw.Format.Duration)}
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "video" || s.Disposition["attached_pic"] == 1 {
			continue
		}
		res.HasVideo = true
		res.Width = s.Width
		res.Height = s.Height
		res.FrameRate = parseFrameRate(s.AvgFrameRate)
		res.Frames = parseInt64(s.NbFrames)
		break
	}
	return res, nil
}

// --- ffprobe JSON wire types (numbers arrive as strings) ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
}

type ffprobeStream struct {
	CodecType    string         `json:"codec_type"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	AvgFrameRate string         `json:"avg_frame_rate"`
	NbFrames     string         `json:"nb_frames"`
	Disposition  map[string]int `json:"disposition"`
}

// parseFrameRate evaluates ffprobe's rational frame rate ("24000/1001").
func parseFrameRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "0/0" {
		return 0
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseFloat(s)
	}
	n := parseFloat(num)
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}
