package classify

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// destPath maps a source file into its tier directory, preserving the
// file's directory structure relative to sourceDir. When the file's parent
// is not actually nested under sourceDir (symlinked inputs, replayed reports
// from elsewhere), the file is flattened directly into the tier directory.
func destPath(targetDir, tierLabel, sourceDir, filePath string) string {
	relDir := ""
	if sourceDir != "" {
		rel, err := filepath.Rel(sourceDir, filepath.Dir(filePath))
		if err == nil && rel != "." && !filepath.IsAbs(rel) &&
			rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			relDir = rel
		}
	}
	return filepath.Join(targetDir, tierLabel, relDir, filepath.Base(filePath))
}

// stampedPath inserts a second-precision timestamp between the filename stem
// and extension ("name.mp4" → "name_20250825134509.mp4"), the collision
// policy for occupied destinations.
func stampedPath(path string, at time.Time) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_"+at.Format("20060102150405")+ext)
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
