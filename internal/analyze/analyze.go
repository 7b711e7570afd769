// Package analyze implements the read-only inspection mode: probe every
// video under a folder, resolve its tier, and emit an analysis report
// without touching any file. The saved report can later drive a replay
// classification.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
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

var (
	ErrNoFiles       = errors.New("no video files found")
	ErrFolderMissing = errors.New("folder not found")
)

// Analyzer probes folders of videos. Probing is read-only, so unlike
// classification it fans out over a bounded worker pool.
type Analyzer struct {
	cfg   *config.Config
	table *tier.Table
	log   *logrus.Logger

	probeFn probe.Func
	now     func() time.Time
}

// New builds an analyzer from the configuration, failing fast on an invalid
// tier shape.
func New(cfg *config.Config, log *logrus.Logger) (*Analyzer, error) {
	table, err := tier.New(cfg.StepMegabits, cfg.Levels)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Silent()
	}
	p := probe.New(cfg.FfprobePath, cfg.ProbeTimeout)
	return &Analyzer{
		cfg:     cfg,
		table:   table,
		log:     log,
		probeFn: p.Probe,
		now:     time.Now,
	}, nil
}

// AnalyzeDir probes every video under dir and returns the assembled report.
// Files that cannot be probed are logged and excluded; they never abort the
// batch. When save is true the report is written to output, or into the
// analyzed folder when output is empty (the path is logged either way).
func (a *Analyzer) AnalyzeDir(ctx context.Context, dir string, save bool, output string) (*report.Analysis, error) {
	dir, err := normalizeDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFolderMissing, dir)
	}

	files := scan.FindVideos(a.log, dir, a.cfg.Recursive)
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	a.log.WithField("count", len(files)).Info("analyzing video files")

	records := a.probeAll(ctx, files)

	rep := &report.Analysis{
		RunID:      uuid.NewString(),
		FolderPath: dir,
		Timestamp:  a.now(),
		Videos:     records,
		Stats:      buildStats(records),
	}

	if save {
		path := output
		if path == "" {
			path = report.AnalysisReportPath(dir, rep.Timestamp)
		}
		if err := report.Save(path, rep); err != nil {
			a.log.WithError(err).Error("cannot save analysis report")
		} else {
			a.log.WithField("report", path).Info("analysis report saved")
		}
	}
	return rep, nil
}

// AnalyzeFile probes a single file and returns its record.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*report.VideoRecord, error) {
	info, err := a.probeFn(ctx, path)
	if err != nil {
		return nil, err
	}
	return &report.VideoRecord{
		Path:         info.Path,
		Info:         report.NewInfoRecord(info),
		BitrateLevel: a.table.Resolve(info.Bitrate),
	}, nil
}

// probeAll fans the file list out over cfg.Jobs workers and returns the
// successful records sorted by path.
func (a *Analyzer) probeAll(ctx context.Context, files []string) []report.VideoRecord {
	jobs := make(chan string)
	results := make(chan report.VideoRecord, len(files))

	var wg sync.WaitGroup
	for w := 0; w < a.cfg.Jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				info, err := a.probeFn(ctx, path)
				if err != nil {
					a.log.WithError(err).Warnf("skipping %s", filepath.Base(path))
					continue
				}
				results <- report.VideoRecord{
					Path:         info.Path,
					Info:         report.NewInfoRecord(info),
					BitrateLevel: a.table.Resolve(info.Bitrate),
				}
			}
		}()
	}

feed:
	for _, f := range files {
		select {
		case jobs <- f:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	records := make([]report.VideoRecord, 0, len(files))
	for rec := range results {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return records
}

func buildStats(records []report.VideoRecord) report.AnalysisStats {
	stats := report.AnalysisStats{
		TotalVideos:         len(records),
		BitrateDistribution: make(map[string]int),
	}
	for _, rec := range records {
		info := rec.Info.Info(rec.Path)
		stats.TotalSizeBytes += info.SizeBytes
		stats.TotalDuration += info.Duration
		stats.BitrateDistribution[rec.BitrateLevel]++
	}
	return stats
}

// Summary renders the distribution for terminal output, densest tiers as the
// table orders them.
func (a *Analyzer) Summary(rep *report.Analysis) string {
	var b []byte
	b = fmt.Appendf(b, "Analyzed %d videos in %s\n", rep.Stats.TotalVideos, rep.FolderPath)
	b = fmt.Appendf(b, "Total size: %s, total duration: %s\n",
		media.Info{SizeBytes: rep.Stats.TotalSizeBytes}.SizeFormatted(),
		media.Info{Duration: rep.Stats.TotalDuration}.DurationFormatted())
	for _, label := range a.table.Labels() {
		if n := rep.Stats.BitrateDistribution[label]; n > 0 {
			b = fmt.Appendf(b, "  %s: %d\n", label, n)
		}
	}
	return string(b)
}

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
