package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/bitv/internal/media"
)

// Audit is the plain-text per-file log of a classification run. One block is
// written per processed file; blocks are separated by a dashed rule.
type Audit struct {
	f *os.File
}

// OpenAudit creates the audit log file, creating parent directories as
// needed.
func OpenAudit(path string) (*Audit, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create audit log: %w", err)
	}
	return &Audit{f: f}, nil
}

// Record appends one outcome block. Write failures are swallowed: the audit
// log is best-effort and must never fail a classification.
func (a *Audit) Record(o media.Outcome) {
	var b strings.Builder
	fmt.Fprintf(&b, "time: %s\n", o.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "file: %s\n", filepath.Base(o.SourcePath))
	fmt.Fprintf(&b, "source: %s\n", o.SourcePath)

	if o.Success {
		fmt.Fprintf(&b, "target: %s\n", o.TargetPath)
		fmt.Fprintf(&b, "tier: %s\n", o.TierLabel)
		if o.Info != nil {
			fmt.Fprintf(&b, "duration: %.2fs\n", o.Info.Duration)
			fmt.Fprintf(&b, "bitrate: %.2f Mbps\n", o.Info.BitrateMbps())
			fmt.Fprintf(&b, "resolution: %dx%d\n", o.Info.Width, o.Info.Height)
			fmt.Fprintf(&b, "fps: %.2f\n", o.Info.FrameRate)
			fmt.Fprintf(&b, "size: %.2f MB\n", o.Info.SizeMB())
		}
	} else {
		fmt.Fprintf(&b, "error: %s\n", o.ErrorMessage)
	}
	b.WriteString(strings.Repeat("-", 50) + "\n")

	_, _ = a.f.WriteString(b.String())
}

// Close flushes and closes the log file.
func (a *Audit) Close() error {
	return a.f.Close()
}
