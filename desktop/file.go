package desktop

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Load reads and parses the desktop entry at path.
func Load(fs afero.Fs, path string) (*Entry, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read desktop entry '%s': %w", path, err)
	}

	entry, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to load '%s': %w", path, err)
	}

	return entry, nil
}

// WriteFile replaces or creates path with content in a single rename, so no
// partially written entry is ever observable.
func WriteFile(fs afero.Fs, path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create '%s': %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".menufs-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to stage '%s': %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("failed to stage '%s': %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to stage '%s': %w", path, err)
	}
	if err := fs.Chmod(tmpName, 0o644); err != nil && !os.IsNotExist(err) {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to stage '%s': %w", path, err)
	}

	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to replace '%s': %w", path, err)
	}

	return nil
}
