package outputproviders

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// GetFullPath constructs the full file path from filename and output path
func GetFullPath(filename string, outputPath string) string {
	return outputPath + string(os.PathSeparator) + filename
}

// TimestampedName builds "<base>-<timestamp>.<ext>" so repeated runs
// never overwrite each other's exports.
func TimestampedName(base, ext string) string {
	return fmt.Sprintf("%s-%s.%s", base, time.Now().Format("20060102-150405"), ext)
}

// EnsureDir creates the parent directory of path when missing.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, os.ModePerm)
	}
	return nil
}
