package probe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Realistic ffprobe JSON for an mp4 with one video stream, one audio stream,
// and an attached-pic cover that must not be picked as the video stream.
const sampleVideo = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 900,
      "disposition": { "default": 0, "attached_pic": 1 }
    },
    {
      "index": 1,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "avg_frame_rate": "24000/1001",
      "nb_frames": "143760",
      "disposition": { "default": 1, "attached_pic": 0 }
    },
    {
      "index": 2,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "disposition": { "default": 1 }
    }
  ],
  "format": {
    "filename": "/media/test/movie.mp4",
    "duration": "5998.123000",
    "size": "4500000000",
    "bit_rate": "6001234"
  }
}`

const sampleAudioOnly = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mp3",
      "codec_type": "audio",
      "channels": 2,
      "disposition": { "default": 1 }
    }
  ],
  "format": { "duration": "180.0", "size": "4000000" }
}`

const sampleNoFrameCount = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "vp9",
      "codec_type": "video",
      "width": 1280,
      "height": 720,
      "avg_frame_rate": "30/1",
      "disposition": { "default": 1 }
    }
  ],
  "format": { "duration": "60.0", "size": "10000000" }
}`

func TestParseJSON_PrimaryVideo(t *testing.T) {
	res, err := ParseJSON([]byte(sampleVideo))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	if !res.HasVideo {
		t.Fatal("HasVideo = false, want true")
	}
	// The attached pic must be skipped.
	if res.Width != 1920 || res.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", res.Width, res.Height)
	}
	wantFPS := 24000.0 / 1001.0
	if math.Abs(res.FrameRate-wantFPS) > 1e-9 {
		t.Errorf("FrameRate = %v, want %v", res.FrameRate, wantFPS)
	}
	if res.Frames != 143760 {
		t.Errorf("Frames = %d, want 143760", res.Frames)
	}
}

func TestParseJSON_NoVideoStream(t *testing.T) {
	res, err := ParseJSON([]byte(sampleAudioOnly))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	if res.HasVideo {
		t.Error("HasVideo = true for audio-only input")
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("ParseJSON(malformed) error = nil, want error")
	}
}

func TestBuildInfo_DurationFromFrames(t *testing.T) {
	res, err := ParseJSON([]byte(sampleVideo))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}

	info := res.BuildInfo("/media/test/movie.mp4", 4_500_000_000)
	// 143760 frames at 24000/1001 fps → 5996.8 s
	wantDur := 143760.0 / (24000.0 / 1001.0)
	if math.Abs(info.Duration-wantDur) > 1e-6 {
		t.Errorf("Duration = %v, want %v (frame-derived, not container)", info.Duration, wantDur)
	}
	wantBitrate := 4_500_000_000 * 8 / wantDur
	if math.Abs(info.Bitrate-wantBitrate) > 1e-3 {
		t.Errorf("Bitrate = %v, want %v", info.Bitrate, wantBitrate)
	}
}

func TestBuildInfo_FallsBackToContainerDuration(t *testing.T) {
	res, err := ParseJSON([]byte(sampleNoFrameCount))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	info := res.BuildInfo("/v/clip.webm", 10_000_000)
	if info.Duration != 60 {
		t.Errorf("Duration = %v, want container duration 60", info.Duration)
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"24000/1001", 24000.0 / 1001.0},
		{"25/1", 25},
		{"30", 30},
		{"0/0", 0},
		{"", 0},
		{"x/y", 0},
	}
	for _, tt := range tests {
		if got := parseFrameRate(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseFrameRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestProbe_NotFound(t *testing.T) {
	p := New("ffprobe", time.Second)
	_, err := p.Probe(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	pe, ok := AsError(err)
	if !ok || pe.Kind != NotFound {
		t.Errorf("Probe(missing) error = %v, want *Error{NotFound}", err)
	}
}

func TestProbe_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New("ffprobe", time.Second)
	_, err := p.Probe(context.Background(), path)
	pe, ok := AsError(err)
	if !ok || pe.Kind != UnsupportedFormat {
		t.Errorf("Probe(.txt) error = %v, want *Error{UnsupportedFormat}", err)
	}
}

func TestProbe_UnopenableBinaryMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.mp4")
	if err := os.WriteFile(path, []byte("not a real video"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New("definitely-not-ffprobe-on-path", time.Second)
	_, err := p.Probe(context.Background(), path)
	pe, ok := AsError(err)
	if !ok || pe.Kind != Unopenable {
		t.Errorf("Probe with missing binary error = %v, want *Error{Unopenable}", err)
	}
}
