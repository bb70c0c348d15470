package file

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FindRecentAfter walks dir and returns every regular file whose
// modification time is after startTime.
func FindRecentAfter(dir string, startTime time.Time) ([]string, error) {
	var recentFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo,
		err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && info.ModTime().After(startTime) {
			recentFiles = append(recentFiles, path)
		}
		return nil
	})

	return recentFiles, err
}

// FilterByExt keeps only the paths whose extension matches one of exts.
// Extension comparison is case-insensitive and includes the dot.
func FilterByExt(paths []string, exts ...string) []string {
	filtered := make([]string, 0, len(paths))
	for _, path := range paths {
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == want {
				filtered = append(filtered, path)
				break
			}
		}
	}
	return filtered
}
