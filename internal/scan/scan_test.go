package scan

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIsVideo(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.mp4", true},
		{"a.MKV", true},
		{"a.webm", true},
		{"marked.nov", true},
		{"a.txt", false},
		{"a.mp3", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsVideo(tt.path); got != tt.want {
			t.Errorf("IsVideo(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFindVideos_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp4"))
	touch(t, filepath.Join(dir, "b.txt"))
	touch(t, filepath.Join(dir, "sub", "c.mkv"))

	got := FindVideos(silentLogger(), dir, false)
	if len(got) != 1 || filepath.Base(got[0]) != "a.mp4" {
		t.Errorf("FindVideos(non-recursive) = %v, want only a.mp4", got)
	}
}

func TestFindVideos_Recursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp4"))
	touch(t, filepath.Join(dir, "sub", "c.mkv"))
	touch(t, filepath.Join(dir, "sub", "deep", "d.nov"))
	touch(t, filepath.Join(dir, "sub", "skip.srt"))

	got := FindVideos(silentLogger(), dir, true)
	if len(got) != 3 {
		t.Fatalf("FindVideos(recursive) = %v, want 3 files", got)
	}
	// Sorted output.
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Errorf("results not sorted: %v", got)
		}
	}
}

func TestFindVideos_MissingRoot(t *testing.T) {
	got := FindVideos(silentLogger(), filepath.Join(t.TempDir(), "nope"), true)
	if len(got) != 0 {
		t.Errorf("FindVideos(missing root) = %v, want empty", got)
	}
}

func TestFindVideos_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp4")
	touch(t, file)

	got := FindVideos(silentLogger(), file, false)
	if len(got) != 0 {
		t.Errorf("FindVideos(file root) = %v, want empty", got)
	}
}
