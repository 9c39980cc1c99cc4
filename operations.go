package menufs

import (
	"context"
	"path/filepath"

	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/data"
	errs "github.com/mwantia/menufs/data/errors"
	"github.com/mwantia/menufs/desktop"
	"github.com/mwantia/menufs/dispatch"
)

// Create writes a new desktop entry for path into the user's applications
// directory and assigns it the categories that place it in the parent
// directory. Application ids are global: an id already known anywhere in
// the cache is rejected.
func (m *MenuFileSystem) Create(ctx context.Context, path string, content []byte) (err error) {
	defer func() { observeMutation("create", err) }()

	vp, err := data.ParsePath(path)
	if err != nil {
		return err
	}
	parent, id, err := vp.SplitForWrite()
	if err != nil {
		return err
	}
	id = data.DesktopID(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.call(ctx, func(ctx context.Context, c cache.Cache) error {
		if c.FindApp(id) != nil {
			return errs.InvalidOperation(nil, "application '%s' already exists", id)
		}
		return nil
	}); err != nil {
		return err
	}

	return m.write(ctx, parent, id, content)
}

// Replace is Create without the existence check.
func (m *MenuFileSystem) Replace(ctx context.Context, path string, content []byte) (err error) {
	defer func() { observeMutation("replace", err) }()

	vp, err := data.ParsePath(path)
	if err != nil {
		return err
	}
	parent, id, err := vp.SplitForWrite()
	if err != nil {
		return err
	}
	id = data.DesktopID(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.write(ctx, parent, id, content)
}

func (m *MenuFileSystem) write(ctx context.Context, parent data.VirtualPath, id string, content []byte) error {
	entry := desktop.ParseOrNew(content)
	entry.Set(desktop.KeyType, desktop.TypeApplication)
	entry.Ensure(desktop.KeyName, "")
	entry.Ensure(desktop.KeyExec, "")

	tree, err := m.loadMenu(ctx)
	if err != nil {
		return err
	}

	current := entry.Categories()
	delta, err := updateCategories(tree, current, nil, parent)
	if err != nil {
		return err
	}
	m.log.Debug("Category delta for '%s' into '%s': +%s -%s", id, parent, delta.Add, delta.Del)

	if !delta.Empty() {
		entry.SetCategories(delta.Apply(current))
	}

	return m.commit(ctx, filepath.Join(m.userAppDir, id), entry)
}

// Delete hides the application at path by setting NoDisplay. Files are
// never removed; the item disappears once the cache reloads.
func (m *MenuFileSystem) Delete(ctx context.Context, path string) (err error) {
	defer func() { observeMutation("delete", err) }()

	vp, err := data.ParsePath(path)
	if err != nil {
		return err
	}
	if _, _, err := vp.SplitForWrite(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, err := m.resolveApplication(ctx, vp)
	if err != nil {
		return err
	}

	entry, err := desktop.Load(m.fs, item.FilePath)
	if err != nil {
		return err
	}
	entry.SetBool(desktop.KeyNoDisplay, true)

	return m.commit(ctx, m.writeTarget(item.FilePath, item.ID), entry)
}

// Move relocates an application between category directories by rewriting
// its categories. Renaming is unsupported; moving within one directory is a no-op.
func (m *MenuFileSystem) Move(ctx context.Context, src, dst string) (err error) {
	defer func() { observeMutation("move", err) }()

	srcPath, err := data.ParsePath(src)
	if err != nil {
		return err
	}
	dstPath, err := data.ParsePath(dst)
	if err != nil {
		return err
	}

	srcParent, srcID, err := srcPath.SplitForWrite()
	if err != nil {
		return err
	}
	dstParent, dstID, err := dstPath.SplitForWrite()
	if err != nil {
		return err
	}

	if srcID != dstID {
		return errs.InvalidOperation(nil, "cannot rename '%s' to '%s'", srcID, dstID)
	}
	if srcParent.Equal(dstParent) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, err := m.resolveApplication(ctx, srcPath)
	if err != nil {
		return err
	}

	entry, err := desktop.Load(m.fs, item.FilePath)
	if err != nil {
		return err
	}

	tree, err := m.loadMenu(ctx)
	if err != nil {
		return err
	}

	current := entry.Categories()
	delta, err := updateCategories(tree, current, &srcParent, dstParent)
	if err != nil {
		return err
	}
	m.log.Debug("Category delta for '%s' from '%s' to '%s': +%s -%s", item.ID, srcParent, dstParent, delta.Add, delta.Del)

	if delta.Empty() {
		return nil
	}
	entry.SetCategories(delta.Apply(current))

	return m.commit(ctx, m.writeTarget(item.FilePath, item.ID), entry)
}

func (m *MenuFileSystem) resolveApplication(ctx context.Context, vp data.VirtualPath) (*cache.Item, error) {
	return dispatch.Do(ctx, m.dispatcher, func(ctx context.Context) (*cache.Item, error) {
		item, err := resolve(m.cache, vp)
		if err != nil {
			return nil, err
		}
		if !item.IsApplication() {
			return nil, errs.InvalidOperation(nil, "'%s' is not an application", vp.String())
		}

		return item, nil
	})
}
