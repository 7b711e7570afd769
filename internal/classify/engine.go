// Package classify orchestrates the classification pipeline: discover →
// probe → tier resolution → destination resolution → move/copy → outcome
// bookkeeping. It supports two entry modes: a fresh source scan and a replay
// of a previously saved analysis report.
package classify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/backmassage/bitv/internal/config"
	"github.com/backmassage/bitv/internal/logging"
	"github.com/backmassage/bitv/internal/media"
	"github.com/backmassage/bitv/internal/probe"
	"github.com/backmassage/bitv/internal/report"
	"github.com/backmassage/bitv/internal/scan"
	"github.com/backmassage/bitv/internal/tier"
)

// Sentinel errors for the structural (pre-flight) failure modes. Per-file
// failures never surface here; they become failed outcomes in the report.
var (
	// ErrNoFiles: the scan found nothing to classify. A legitimate terminal
	// state, reported as a warning rather than a failure by the CLI.
	ErrNoFiles = errors.New("no video files found")
	// ErrSourceMissing: the source directory (or the directory a replayed
	// report declares) does not exist.
	ErrSourceMissing = errors.New("source directory not found")
)

// Engine runs classification batches. The mutating path is strictly
// sequential: collision resolution inspects the destination filesystem and
// is not safe under concurrent execution.
type Engine struct {
	cfg   *config.Config
	table *tier.Table
	log   *logrus.Logger

	// probeFn is swapped in tests; production uses a real ffprobe Prober.
	probeFn probe.Func
	now     func() time.Time
}

// New builds an engine, constructing the tier table up front so an invalid
// step/levels configuration fails before any file is touched.
func New(cfg *config.Config, log *logrus.Logger) (*Engine, error) {
	table, err := tier.New(cfg.StepMegabits, cfg.Levels)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Silent()
	}
	p := probe.New(cfg.FfprobePath, cfg.ProbeTimeout)
	return &Engine{
		cfg:     cfg,
		table:   table,
		log:     log,
		probeFn: p.Probe,
		now:     time.Now,
	}, nil
}

// Table exposes the engine's tier table (shared read-only state).
func (e *Engine) Table() *tier.Table { return e.table }

// ClassifyDir scans sourceDir and classifies every discovered video into
// tier subdirectories of targetDir (sourceDir itself when targetDir is
// empty). It returns the classification report; per-file failures are
// recorded inside it, never returned as an error.
func (e *Engine) ClassifyDir(ctx context.Context, sourceDir, targetDir string) (*report.Classification, error) {
	sourceDir, err := normalizeDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, sourceDir)
	}
	if targetDir == "" {
		targetDir = sourceDir
	}

	files := scan.FindVideos(e.log, sourceDir, e.cfg.Recursive)
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	e.log.WithField("count", len(files)).Info("found video files")

	rep := e.newReport(sourceDir, targetDir)
	rep.TotalFiles = len(files)

	return e.runBatch(ctx, rep, targetDir, func(yield func(item batchItem) bool) {
		for _, f := range files {
			if !yield(batchItem{path: f, sourceDir: sourceDir}) {
				return
			}
		}
	})
}

// ClassifyFromReport replays a previously saved analysis report: file
// records already carrying a tier label are honored verbatim (the report is
// the source of truth the user reviewed); records without one are probed
// fresh. Files that vanished since the report was written are skipped
// without recording an outcome, so replaying an already-applied report is a
// no-op rather than an error.
func (e *Engine) ClassifyFromReport(ctx context.Context, reportPath string) (*report.Classification, error) {
	a, err := report.LoadAnalysis(reportPath)
	if err != nil {
		return nil, err
	}

	// An empty folder_path would resolve to the working directory and sort
	// the report's files into a directory the user never named.
	if a.FolderPath == "" {
		return nil, fmt.Errorf("%w: report declares no folder path", ErrSourceMissing)
	}
	sourceDir, err := normalizeDir(a.FolderPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, a.FolderPath)
	}
	targetDir := sourceDir

	rep := e.newReport(sourceDir, targetDir)
	rep.ReportPath = reportPath
	rep.TotalFiles = len(a.Videos)

	return e.runBatch(ctx, rep, targetDir, func(yield func(item batchItem) bool) {
		for _, rec := range a.Videos {
			if !pathExists(rec.Path) {
				e.log.WithField("path", rec.Path).Debug("skipping missing file from report")
				continue
			}
			item := batchItem{path: rec.Path, sourceDir: sourceDir}
			if rec.BitrateLevel != "" {
				info := rec.Info.Info(rec.Path)
				item.frozen = &frozenRecord{label: rec.BitrateLevel, info: info}
			}
			if !yield(item) {
				return
			}
		}
	})
}

// batchItem is one unit of classification work. frozen is non-nil in replay
// mode when the report already resolved a tier for the file.
type batchItem struct {
	path      string
	sourceDir string
	frozen    *frozenRecord
}

type frozenRecord struct {
	label string
	info  media.Info
}

// runBatch drives the shared per-file loop of both modes: classify, record
// outcome, audit, aggregate, and finally persist the run report. Per-file
// failures never abort the batch; cancellation stops between files.
func (e *Engine) runBatch(ctx context.Context, rep *report.Classification, targetDir string, items func(yield func(batchItem) bool)) (*report.Classification, error) {
	audit, err := report.OpenAudit(report.ClassifyLogPath(targetDir, rep.Timestamp))
	if err != nil {
		return nil, err
	}
	defer audit.Close()

	stats := media.NewStats()
	interrupted := false

	items(func(item batchItem) bool {
		if ctx.Err() != nil {
			interrupted = true
			return false
		}

		outcome := e.classifyOne(ctx, item, targetDir)
		stats.Add(outcome)
		rep.Results = append(rep.Results, report.NewOutcomeRecord(outcome))
		audit.Record(outcome)
		e.logOutcome(outcome)
		return true
	})

	if interrupted {
		e.log.Warn("interrupted, stopping batch")
	}

	rep.Stats = report.StatsFrom(stats)
	rep.Success = stats.Failed == 0
	reportPath := report.ClassifyReportPath(targetDir, rep.Timestamp)
	if err := report.Save(reportPath, rep); err != nil {
		e.log.WithError(err).Error("cannot save classification report")
	} else {
		e.log.WithField("report", reportPath).Info("classification report saved")
	}

	for _, line := range splitLines(stats.Summary()) {
		e.log.Info(line)
	}
	return rep, nil
}

// classifyOne executes steps b–f for a single file: resolve a tier (frozen
// or probed), compute the destination, resolve collisions, and transfer.
// Every failure path returns a failed outcome; nothing escalates.
func (e *Engine) classifyOne(ctx context.Context, item batchItem, targetDir string) media.Outcome {
	start := e.now()

	var info media.Info
	var label string
	if item.frozen != nil {
		info = item.frozen.info
		label = item.frozen.label
	} else {
		probed, err := e.probeFn(ctx, item.path)
		if err != nil {
			return media.Failed(item.path, nil, err.Error(), start)
		}
		info = probed
		label = e.table.Resolve(info.Bitrate)
	}

	dest := destPath(targetDir, label, item.sourceDir, item.path)
	if pathExists(dest) {
		dest = stampedPath(dest, e.now())
		if pathExists(dest) {
			return media.Failed(item.path, &info,
				fmt.Sprintf("destination already exists after rename retry: %s", dest), start)
		}
	}

	if err := transfer(item.path, dest, e.cfg.Move); err != nil {
		return media.Failed(item.path, &info, err.Error(), start)
	}
	return media.Succeeded(item.path, dest, info, label, e.now())
}

func (e *Engine) logOutcome(o media.Outcome) {
	verb := "copied"
	if e.cfg.Move {
		verb = "moved"
	}
	if o.Success {
		fields := logrus.Fields{"tier": o.TierLabel, "target": o.TargetPath}
		if o.Info != nil {
			fields["bitrate"] = fmt.Sprintf("%.2f Mbps", o.Info.BitrateMbps())
		}
		e.log.WithFields(fields).Infof("%s %s", verb, filepath.Base(o.SourcePath))
		return
	}
	e.log.WithField("error", o.ErrorMessage).Warnf("failed %s", filepath.Base(o.SourcePath))
}

func (e *Engine) newReport(sourceDir, targetDir string) *report.Classification {
	return &report.Classification{
		RunID:     uuid.NewString(),
		Success:   true,
		Timestamp: e.now(),
		SourceDir: sourceDir,
		TargetDir: targetDir,
		IsMove:    e.cfg.Move,
	}
}

// normalizeDir resolves dir to an absolute path and verifies it exists and
// is a directory.
func normalizeDir(dir string) (string, error) {
	abs, err := filepath.Abs(config.NormalizeDirArg(dir))
	if err != nil {
		return dir, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return abs, err
	}
	if !fi.IsDir() {
		return abs, fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
