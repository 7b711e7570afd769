package analyze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/backmassage/bitv/internal/config"
	"github.com/backmassage/bitv/internal/logging"
	"github.com/backmassage/bitv/internal/media"
	"github.com/backmassage/bitv/internal/report"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestAnalyzer(t *testing.T, bitrates map[string]float64) *Analyzer {
	t.Helper()
	cfg := config.Default()
	a, err := New(&cfg, logging.Silent())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	a.probeFn = func(_ context.Context, path string) (media.Info, error) {
		br, ok := bitrates[filepath.Base(path)]
		if !ok {
			return media.Info{}, fmt.Errorf("cannot read video stream: %s", path)
		}
		return media.Info{
			Path: path, Duration: 60, Bitrate: br,
			Width: 1920, Height: 1080, FrameRate: 25,
			SizeBytes: int64(br * 60 / 8),
		}, nil
	}
	return a
}

func TestAnalyzeDir(t *testing.T) {
	dir := t.TempDir()
	bitrates := map[string]float64{
		"a.mp4": 2_000_000,
		"b.mp4": 3_000_000,
		"c.mkv": 60_000_000,
	}
	for name := range bitrates {
		touch(t, filepath.Join(dir, name))
	}

	a := newTestAnalyzer(t, bitrates)
	rep, err := a.AnalyzeDir(context.Background(), dir, true, "")
	if err != nil {
		t.Fatalf("AnalyzeDir error: %v", err)
	}

	if rep.Stats.TotalVideos != 3 {
		t.Errorf("TotalVideos = %d, want 3", rep.Stats.TotalVideos)
	}
	if got := rep.Stats.BitrateDistribution; got["05MB"] != 2 || got["overflow"] != 1 {
		t.Errorf("distribution = %v", got)
	}
	if !sort.SliceIsSorted(rep.Videos, func(i, j int) bool { return rep.Videos[i].Path < rep.Videos[j].Path }) {
		t.Error("videos not sorted by path")
	}
	if rep.FolderPath != dir {
		t.Errorf("FolderPath = %q, want %q", rep.FolderPath, dir)
	}

	// Saved report is loadable and names the analyzed folder in its filename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var reportName string
	for _, ent := range entries {
		if strings.HasSuffix(ent.Name(), ".json") {
			reportName = ent.Name()
		}
	}
	if reportName == "" {
		t.Fatal("no analysis report written")
	}
	if !strings.HasPrefix(reportName, filepath.Base(dir)+"_analysis_") {
		t.Errorf("report name = %q", reportName)
	}
	loaded, err := report.LoadAnalysis(filepath.Join(dir, reportName))
	if err != nil {
		t.Fatalf("LoadAnalysis error: %v", err)
	}
	if len(loaded.Videos) != 3 {
		t.Errorf("loaded videos = %d, want 3", len(loaded.Videos))
	}
}

func TestAnalyzeDir_OutputOverride(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp4"))
	out := filepath.Join(t.TempDir(), "reports", "scan.json")

	a := newTestAnalyzer(t, map[string]float64{"a.mp4": 2_000_000})
	if _, err := a.AnalyzeDir(context.Background(), dir, true, out); err != nil {
		t.Fatalf("AnalyzeDir error: %v", err)
	}

	loaded, err := report.LoadAnalysis(out)
	if err != nil {
		t.Fatalf("report not written to override path: %v", err)
	}
	if len(loaded.Videos) != 1 {
		t.Errorf("loaded videos = %d, want 1", len(loaded.Videos))
	}
	// Nothing written into the analyzed folder itself.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, ent := range entries {
		if strings.HasSuffix(ent.Name(), ".json") {
			t.Errorf("unexpected report in analyzed folder: %s", ent.Name())
		}
	}
}

func TestAnalyzeDir_SkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "ok.mp4"))
	touch(t, filepath.Join(dir, "corrupt.mp4"))

	a := newTestAnalyzer(t, map[string]float64{"ok.mp4": 2_000_000})
	rep, err := a.AnalyzeDir(context.Background(), dir, false, "")
	if err != nil {
		t.Fatalf("AnalyzeDir error: %v", err)
	}
	if rep.Stats.TotalVideos != 1 {
		t.Errorf("TotalVideos = %d, want 1 (corrupt file skipped)", rep.Stats.TotalVideos)
	}
}

func TestAnalyzeDir_Empty(t *testing.T) {
	a := newTestAnalyzer(t, nil)
	_, err := a.AnalyzeDir(context.Background(), t.TempDir(), false, "")
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("error = %v, want ErrNoFiles", err)
	}
}

func TestAnalyzeDir_Missing(t *testing.T) {
	a := newTestAnalyzer(t, nil)
	_, err := a.AnalyzeDir(context.Background(), filepath.Join(t.TempDir(), "gone"), false, "")
	if !errors.Is(err, ErrFolderMissing) {
		t.Errorf("error = %v, want ErrFolderMissing", err)
	}
}

func TestAnalyzeFile(t *testing.T) {
	a := newTestAnalyzer(t, map[string]float64{"clip.mp4": 7_000_000})

	rec, err := a.AnalyzeFile(context.Background(), "/media/clip.mp4")
	if err != nil {
		t.Fatalf("AnalyzeFile error: %v", err)
	}
	if rec.BitrateLevel != "10MB" {
		t.Errorf("BitrateLevel = %q, want 10MB", rec.BitrateLevel)
	}
	if rec.Info.BitrateMbps != 7 {
		t.Errorf("BitrateMbps = %v, want 7", rec.Info.BitrateMbps)
	}
}

func TestSummary(t *testing.T) {
	a := newTestAnalyzer(t, nil)
	rep := &report.Analysis{
		FolderPath: "/v",
		Stats: report.AnalysisStats{
			TotalVideos:         3,
			TotalSizeBytes:      300 * 1024 * 1024,
			TotalDuration:       180,
			BitrateDistribution: map[string]int{"05MB": 2, "overflow": 1},
		},
	}
	s := a.Summary(rep)
	for _, want := range []string{"3 videos", "05MB: 2", "overflow: 1", "00:03:00"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
	// Labels with zero count are not listed.
	if strings.Contains(s, "10MB") {
		t.Errorf("summary lists empty tier:\n%s", s)
	}
}
