package classify

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// transfer places src at dst by rename (move) or metadata-preserving copy.
// Copies stage through a ".part" temp file in the destination directory and
// rename into place, so an interrupt never leaves a half-written file under
// the final name. Cross-device moves fall back to staged copy + source
// removal.
func transfer(src, dst string, move bool) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	if move {
		err := os.Rename(src, dst)
		if err == nil {
			return nil
		}
		var lerr *os.LinkError
		if !errors.As(err, &lerr) {
			return err
		}
		// Rename across filesystems fails with EXDEV; copy then remove.
		if err := copyPreserving(src, dst); err != nil {
			return err
		}
		return os.Remove(src)
	}
	return copyPreserving(src, dst)
}

// copyPreserving copies src to dst keeping mode and modification time.
func copyPreserving(src, dst string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return err
	}

	tmp := dst + ".part"
	if err := copyContents(src, tmp, fi.Mode()); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chtimes(tmp, fi.ModTime(), fi.ModTime()); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func copyContents(src, tmp string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
