// Package scan discovers candidate video files under a root directory.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// videoExtensions is the recognized extension allow-list (lowercase, with
// leading dot). ".nov" is the marker extension managed by the mark command.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mkv":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpg":  true,
	".mpeg": true,
	".nov":  true,
}

// IsVideo reports whether path has a recognized video extension.
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// FindVideos enumerates video files under root. When recursive is false only
// direct children are considered. A missing or non-directory root is logged
// and yields an empty result rather than an error, so batch operations
// tolerate partially-invalid input sets. Results are sorted
// lexicographically for stable processing order.
func FindVideos(log *logrus.Logger, root string, recursive bool) []string {
	fi, err := os.Stat(root)
	if err != nil || !fi.IsDir() {
		log.WithField("path", root).Warn("not a directory, skipping scan")
		return nil
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.WithError(err).WithField("path", path).Warn("scan error, skipping entry")
				return nil
			}
			if !d.IsDir() && IsVideo(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			log.WithError(err).WithField("path", root).Warn("scan aborted")
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			log.WithError(err).WithField("path", root).Warn("cannot read directory")
			return nil
		}
		for _, e := range entries {
			if !e.IsDir() && IsVideo(e.Name()) {
				files = append(files, filepath.Join(root, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files
}
