package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// ErrMalformed wraps any parse failure when loading a report for replay.
// It is fatal: a replay never proceeds on a report it cannot fully trust.
var ErrMalformed = errors.New("malformed report")

// filenameStamp is the run timestamp embedded in report and log filenames.
const filenameStamp = "20060102_150405"

// Save writes v as indented JSON, creating parent directories as needed.
func Save(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadAnalysis reads an analysis report for replay.
func LoadAnalysis(path string) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	var a Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return &a, nil
}

// LoadClassification reads a classification report.
func LoadClassification(path string) (*Classification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	var c Classification
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return &c, nil
}

// LogsDir returns the audit directory under a classification target.
func LogsDir(targetDir string) string {
	return filepath.Join(targetDir, "logs")
}

// ClassifyLogPath returns the timestamped per-run audit log path.
func ClassifyLogPath(targetDir string, at time.Time) string {
	return filepath.Join(LogsDir(targetDir), "classify_log_"+at.Format(filenameStamp)+".txt")
}

// ClassifyReportPath returns the timestamped per-run JSON report path.
func ClassifyReportPath(targetDir string, at time.Time) string {
	return filepath.Join(LogsDir(targetDir), "classify_report_"+at.Format(filenameStamp)+".json")
}

// AnalysisReportPath returns the default analysis report location inside the
// analyzed folder: <folder>_analysis_<ts>.json.
func AnalysisReportPath(folder string, at time.Time) string {
	name := filepath.Base(folder)
	return filepath.Join(folder, name+"_analysis_"+at.Format(filenameStamp)+".json")
}
