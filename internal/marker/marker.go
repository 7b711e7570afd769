// Package marker hides and unhides video files from media scanners by
// appending a marker extension (".nov") to the filename. Marking is a pure
// rename: content and timestamps are untouched, and the operation is exactly
// reversible.
package marker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/backmassage/bitv/internal/config"
	"github.com/backmassage/bitv/internal/logging"
	"github.com/backmassage/bitv/internal/scan"
)

// Ext is the marker extension appended to hidden files.
const Ext = ".nov"

// Result summarizes one marking batch.
type Result struct {
	Renamed int
	Skipped int
	Failed  int
}

// Marker renames video files to and from their hidden form.
type Marker struct {
	cfg *config.Config
	log *logrus.Logger
}

func New(cfg *config.Config, log *logrus.Logger) *Marker {
	if log == nil {
		log = logging.Silent()
	}
	return &Marker{cfg: cfg, log: log}
}

// Hide appends the marker extension to every unmarked video under dir.
// Already-marked files are skipped.
func (m *Marker) Hide(dir string) (Result, error) {
	return m.walk(dir, func(path string) (string, bool) {
		if strings.HasSuffix(path, Ext) {
			return "", false
		}
		return path + Ext, true
	})
}

// Unhide strips the marker extension from every marked file under dir.
func (m *Marker) Unhide(dir string) (Result, error) {
	return m.walk(dir, func(path string) (string, bool) {
		if !strings.HasSuffix(path, Ext) {
			return "", false
		}
		return strings.TrimSuffix(path, Ext), true
	})
}

// walk applies the rename rule to every video under dir. Per-file failures
// are counted and logged, never fatal.
func (m *Marker) walk(dir string, rule func(path string) (string, bool)) (Result, error) {
	var res Result

	abs, err := filepath.Abs(config.NormalizeDirArg(dir))
	if err == nil {
		dir = abs
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return res, fmt.Errorf("folder not found: %s", dir)
	}

	for _, path := range scan.FindVideos(m.log, dir, m.cfg.Recursive) {
		newPath, ok := rule(path)
		if !ok {
			res.Skipped++
			continue
		}
		if err := renameKeepingTimes(path, newPath); err != nil {
			m.log.WithError(err).Warnf("failed %s", filepath.Base(path))
			res.Failed++
			continue
		}
		m.log.WithField("to", filepath.Base(newPath)).Debugf("renamed %s", filepath.Base(path))
		res.Renamed++
	}
	m.log.WithFields(logrus.Fields{
		"renamed": res.Renamed, "skipped": res.Skipped, "failed": res.Failed,
	}).Info("marking finished")
	return res, nil
}

// renameKeepingTimes renames path and restores its modification time, so
// tools sorting by date see the file unchanged.
func renameKeepingTimes(path, newPath string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("target already exists: %s", newPath)
	}
	if err := os.Rename(path, newPath); err != nil {
		return err
	}
	return os.Chtimes(newPath, fi.ModTime(), fi.ModTime())
}
