package menufs

import (
	"context"
	"io"
	"sync"

	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/data"
	errs "github.com/mwantia/menufs/data/errors"
	"github.com/mwantia/menufs/dispatch"
)

// Enumerator is a finite, non-restartable cursor over one directory.
// Each Next produces one ItemInfo; separators and nil children are skipped.
type Enumerator struct {
	mu sync.Mutex

	m    *MenuFileSystem
	path data.VirtualPath
	dir  *cache.Item

	index  int
	err    error
	closed bool
}

// Enumerate resolves path to a directory and returns a cursor over its children.
func (m *MenuFileSystem) Enumerate(ctx context.Context, path string) (*Enumerator, error) {
	vp, err := data.ParsePath(path)
	if err != nil {
		return nil, err
	}

	dir, err := dispatch.Do(ctx, m.dispatcher, func(ctx context.Context) (*cache.Item, error) {
		return resolveDir(m.cache, vp)
	})
	if err != nil {
		return nil, err
	}

	return &Enumerator{
		m:    m,
		path: vp,
		dir:  dir,
	}, nil
}

// Next returns the next item, or io.EOF once the directory is exhausted.
// Cancellation ends the sequence with a cancellation error; any error is sticky.
func (e *Enumerator) Next(ctx context.Context) (*data.ItemInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, data.ErrClosed
	}
	if e.err != nil {
		return nil, e.err
	}

	if err := data.CheckCancelled(ctx); err != nil {
		e.err = err
		return nil, err
	}

	info, err := dispatch.Do(ctx, e.m.dispatcher, func(ctx context.Context) (*data.ItemInfo, error) {
		for e.index < len(e.dir.Children) {
			child := e.dir.Children[e.index]
			e.index++

			if child == nil || child.Kind == data.KindSeparator {
				continue
			}

			return itemInfo(child, e.path.Join(child.ID), e.m.desktop), nil
		}

		return nil, io.EOF
	})
	if err != nil {
		e.err = err
		return nil, err
	}

	return info, nil
}

// Path returns the enumerated directory.
func (e *Enumerator) Path() data.VirtualPath {
	return e.path
}

func (e *Enumerator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.dir = nil
	return nil
}

// ReadDirectory drains an Enumerator over path into a slice.
func (m *MenuFileSystem) ReadDirectory(ctx context.Context, path string) ([]*data.ItemInfo, error) {
	enumerator, err := m.Enumerate(ctx, path)
	if err != nil {
		return nil, err
	}
	defer enumerator.Close()

	var infos []*data.ItemInfo
	for {
		info, err := enumerator.Next(ctx)
		if err == io.EOF {
			return infos, nil
		}
		if err != nil {
			return nil, err
		}

		infos = append(infos, info)
	}
}

// Stat returns the record of the item at path.
func (m *MenuFileSystem) Stat(ctx context.Context, path string) (*data.ItemInfo, error) {
	vp, err := data.ParsePath(path)
	if err != nil {
		return nil, err
	}

	return dispatch.Do(ctx, m.dispatcher, func(ctx context.Context) (*data.ItemInfo, error) {
		item, err := resolve(m.cache, vp)
		if err != nil {
			return nil, err
		}

		return itemInfo(item, vp, m.desktop), nil
	})
}

// Lookup reports whether path resolves. A missing path is not an error.
func (m *MenuFileSystem) Lookup(ctx context.Context, path string) (bool, error) {
	_, err := m.Stat(ctx, path)
	if data.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// ReadFile returns the backing desktop entry of an application.
func (m *MenuFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	vp, err := data.ParsePath(path)
	if err != nil {
		return nil, err
	}

	file, err := dispatch.Do(ctx, m.dispatcher, func(ctx context.Context) (string, error) {
		item, err := resolve(m.cache, vp)
		if err != nil {
			return "", err
		}
		if !item.IsApplication() {
			return "", errs.InvalidOperation(nil, "'%s' is not an application", vp.String())
		}

		return item.FilePath, nil
	})
	if err != nil {
		return nil, err
	}

	if err := data.CheckCancelled(ctx); err != nil {
		return nil, err
	}

	return readEntry(m.fs, file)
}
