package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// removeFile deletes path and reports whether it existed.
func removeFile(fs afero.Fs, path string) (bool, error) {
	if err := fs.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("repository: failed to remove %s: %w", path, err)
	}
	return true, nil
}

func ensureDir(fs afero.Fs, path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("repository: failed to create directory %s: %w", dir, err)
	}
	return nil
}
