package media

import (
	"fmt"
	"sort"
	"strings"

	"github.com/backmassage/bitv/internal/display"
)

// Stats is the running aggregate over one batch. Size and duration totals
// only include successful outcomes that carry a probed Info. Add must be
// called exactly once per processed file; the engine serializes calls.
type Stats struct {
	Successful     int
	Failed         int
	TotalSizeBytes int64
	TotalDuration  float64

	byLevel map[string][]Outcome
}

// NewStats returns an empty collector.
func NewStats() *Stats {
	return &Stats{byLevel: make(map[string][]Outcome)}
}

// Add ingests one outcome.
func (s *Stats) Add(o Outcome) {
	if !o.Success {
		s.Failed++
		return
	}
	s.Successful++
	if o.Info != nil {
		s.TotalSizeBytes += o.Info.SizeBytes
		s.TotalDuration += o.Info.Duration
	}
	if o.TierLabel != "" {
		s.byLevel[o.TierLabel] = append(s.byLevel[o.TierLabel], o)
	}
}

// Total returns the number of outcomes ingested.
func (s *Stats) Total() int {
	return s.Successful + s.Failed
}

// ByLevel returns the successful outcomes grouped by tier label.
func (s *Stats) ByLevel() map[string][]Outcome {
	return s.byLevel
}

// Levels returns the tier labels seen so far, sorted. Zero-padded labels
// sort in bound order by construction.
func (s *Stats) Levels() []string {
	labels := make([]string, 0, len(s.byLevel))
	for label := range s.byLevel {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Summary renders a multi-line human-readable batch summary.
func (s *Stats) Summary() string {
	total := s.Total()
	if total == 0 {
		return "no files processed"
	}

	rate := float64(s.Successful) / float64(total) * 100
	var b strings.Builder
	fmt.Fprintf(&b, "total: %d, succeeded: %d, failed: %d (%.1f%%)\n",
		total, s.Successful, s.Failed, rate)
	fmt.Fprintf(&b, "total size: %s, total duration: %s",
		display.FormatBytes(s.TotalSizeBytes), display.FormatDuration(s.TotalDuration))

	if len(s.byLevel) > 0 {
		b.WriteString("\ntier distribution:")
		for _, label := range s.Levels() {
			outcomes := s.byLevel[label]
			var size int64
			for _, o := range outcomes {
				if o.Info != nil {
					size += o.Info.SizeBytes
				}
			}
			fmt.Fprintf(&b, "\n  %s: %d files, %s", label, len(outcomes), display.FormatBytes(size))
		}
	}
	return b.String()
}
