package os

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir checks that dir exists and is a directory, creating it and
// its parents with 0755 permissions if it does not exist.
func EnsureDir(dir string) error {
	finfo, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}

	if !finfo.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// CreateFile creates (or truncates) path, making sure its parent directory exists.
func CreateFile(path string) (*os.File, error) {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return os.Create(path)
}
