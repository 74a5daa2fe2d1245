// Package archive keeps the output of previous runs around instead of
// overwriting it.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Dir is the name of the archive directory next to the archived file.
const Dir = "archive"

var now = time.Now

// ArchiveFile moves path to <dir>/archive/<name>-<timestamp><ext> and
// returns the new location. A missing file is not an error; the empty string
// is returned.
func ArchiveFile(path string) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("refusing to archive directory: %s", path)
	}

	archiveDir := filepath.Join(filepath.Dir(path), Dir)
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	t := now()
	target := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, t.Format("20060102-150405"), ext))
	if _, err := os.Stat(target); err == nil {
		// Two runs within the same second
		target = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, t.Format("20060102-150405.000000"), ext))
	}

	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}
	return target, nil
}

// ArchiveFiles archives every existing path and returns the new locations.
// It stops at the first failure.
func ArchiveFiles(paths ...string) ([]string, error) {
	var moved []string
	for _, p := range paths {
		target, err := ArchiveFile(p)
		if err != nil {
			return moved, err
		}
		if target != "" {
			moved = append(moved, target)
		}
	}
	return moved, nil
}
