// Package report defines the JSON report schemas, their persistence, and the
// plain-text audit log written alongside classification runs.
//
// Reports intentionally persist display-precision values (rounded Mbps, MB,
// fps): the replay path works from exactly the numbers the user reviewed,
// not from re-derived measurements.
package report

import (
	"math"
	"time"

	"github.com/backmassage/bitv/internal/display"
	"github.com/backmassage/bitv/internal/media"
)

// InfoRecord is the persisted form of a [media.Info].
type InfoRecord struct {
	Filename          string  `json:"filename"`
	DurationFormatted string  `json:"duration_formatted"`
	BitrateMbps       float64 `json:"bitrate_mbps"`
	BitrateFormatted  string  `json:"bitrate_formatted"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	Resolution        string  `json:"resolution"`
	FPS               float64 `json:"fps"`
	SizeMB            float64 `json:"size_mb"`
}

// NewInfoRecord reduces a probed Info to its persisted precision.
func NewInfoRecord(i media.Info) InfoRecord {
	return InfoRecord{
		Filename:          i.Filename(),
		DurationFormatted: i.DurationFormatted(),
		BitrateMbps:       math.Round(i.BitrateMbps()),
		BitrateFormatted:  i.BitrateFormatted(),
		Width:             i.Width,
		Height:            i.Height,
		Resolution:        i.Resolution(),
		FPS:               math.Round(i.FrameRate*10) / 10,
		SizeMB:            math.Round(i.SizeMB()*10) / 10,
	}
}

// Info reconstructs a media.Info from the persisted precision. The round
// trip is exact over bitrate_mbps, size_mb and resolution; raw byte counts
// and sub-second durations are reduced to their displayed form.
func (r InfoRecord) Info(path string) media.Info {
	return media.Info{
		Path:      path,
		Duration:  display.ParseDuration(r.DurationFormatted),
		Bitrate:   r.BitrateMbps * 1_000_000,
		Width:     r.Width,
		Height:    r.Height,
		FrameRate: r.FPS,
		SizeBytes: int64(r.SizeMB * 1024 * 1024),
	}
}

// VideoRecord is one analyzed file inside an analysis report.
type VideoRecord struct {
	Path         string     `json:"path"`
	Info         InfoRecord `json:"info"`
	BitrateLevel string     `json:"bitrate_level"`
}

// AnalysisStats aggregates an analysis run.
type AnalysisStats struct {
	TotalVideos         int            `json:"total_videos"`
	TotalSizeBytes      int64          `json:"total_size_bytes"`
	TotalDuration       float64        `json:"total_duration"`
	BitrateDistribution map[string]int `json:"bitrate_distribution"`
}

// Analysis is the read-only folder analysis report. It doubles as the input
// of the replay classification mode.
type Analysis struct {
	RunID      string        `json:"run_id"`
	FolderPath string        `json:"folder_path"`
	Timestamp  time.Time     `json:"timestamp"`
	Videos     []VideoRecord `json:"videos"`
	Stats      AnalysisStats `json:"stats"`
}

// OutcomeRecord is the persisted form of a [media.Outcome]. error_message is
// omitted entirely on success; its absence, not an empty string, signals a
// successful operation.
type OutcomeRecord struct {
	Success      bool        `json:"success"`
	SourcePath   string      `json:"source_path"`
	TargetPath   string      `json:"target_path"`
	BitrateLevel string      `json:"bitrate_level"`
	Timestamp    time.Time   `json:"timestamp"`
	Info         *InfoRecord `json:"video_info,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

// NewOutcomeRecord converts an outcome for persistence.
func NewOutcomeRecord(o media.Outcome) OutcomeRecord {
	rec := OutcomeRecord{
		Success:      o.Success,
		SourcePath:   o.SourcePath,
		TargetPath:   o.TargetPath,
		BitrateLevel: o.TierLabel,
		Timestamp:    o.Timestamp,
		ErrorMessage: o.ErrorMessage,
	}
	if o.Info != nil {
		ir := NewInfoRecord(*o.Info)
		rec.Info = &ir
	}
	return rec
}

// ClassifyStats aggregates a classification run.
type ClassifyStats struct {
	SuccessfulOperations int     `json:"successful_operations"`
	FailedOperations     int     `json:"failed_operations"`
	TotalSizeBytes       int64   `json:"total_size_bytes"`
	TotalDuration        float64 `json:"total_duration"`
}

// Classification is the report emitted by both classification modes.
type Classification struct {
	RunID      string          `json:"run_id"`
	Success    bool            `json:"success"`
	Timestamp  time.Time       `json:"timestamp"`
	ReportPath string          `json:"report_path,omitempty"` // replay mode: the consumed report
	SourceDir  string          `json:"source_dir"`
	TargetDir  string          `json:"target_dir"`
	IsMove     bool            `json:"is_move"`
	TotalFiles int             `json:"total_files"`
	Results    []OutcomeRecord `json:"results"`
	Stats      ClassifyStats   `json:"stats"`
}

// StatsFrom reduces a collector to the persisted classification stats.
func StatsFrom(s *media.Stats) ClassifyStats {
	return ClassifyStats{
		SuccessfulOperations: s.Successful,
		FailedOperations:     s.Failed,
		TotalSizeBytes:       s.TotalSizeBytes,
		TotalDuration:        s.TotalDuration,
	}
}
