package menufs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/desktop"
	"github.com/mwantia/menufs/menu"
	"github.com/spf13/afero"
)

func readEntry(fs afero.Fs, path string) ([]byte, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read desktop entry '%s': %w", path, err)
	}

	return content, nil
}

// loadMenu rebuilds the merged menu tree from disk. Callers hold m.mu.
func (m *MenuFileSystem) loadMenu(ctx context.Context) (*menu.Tree, error) {
	tree, err := m.loader.Load(ctx, m.menuFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu '%s': %w", m.menuFile, err)
	}

	return tree, nil
}

// writeTarget keeps entries of the user's applications dir in place and
// redirects every other entry to a user copy with the same id.
func (m *MenuFileSystem) writeTarget(file, id string) string {
	if file != "" {
		rel, err := filepath.Rel(m.userAppDir, file)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return file
		}
	}

	return filepath.Join(m.userAppDir, id)
}

// commit renders entry completely in memory and replaces path with it.
// Cancellation is honoured up to the write, never during it.
func (m *MenuFileSystem) commit(ctx context.Context, path string, entry *desktop.Entry) error {
	content, err := entry.Bytes()
	if err != nil {
		return fmt.Errorf("failed to render '%s': %w", path, err)
	}

	if err := data.CheckCancelled(ctx); err != nil {
		return err
	}

	if err := desktop.WriteFile(m.fs, path, content); err != nil {
		return err
	}

	m.log.Debug("Wrote desktop entry '%s' (%d bytes)", path, len(content))
	return nil
}
