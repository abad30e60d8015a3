package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ReadDocument reads a whole document and returns it with its permission bits
func ReadDocument(fs afero.Fs, path string) ([]byte, os.FileMode, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, 0, err
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%s is a directory", path)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, info.Mode().Perm(), nil
}

// WriteFileAtomic replaces path with data using a temp file in the same
// directory followed by a rename. The file ends up with perm (0644 when zero).
func WriteFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}

	dir := filepath.Dir(path)
	tmpFile, err := afero.TempFile(fs, dir, ".docrev-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// No-op after a successful rename
	defer func() {
		_ = fs.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := fs.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
