package menufs

import (
	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/data"
	errs "github.com/mwantia/menufs/data/errors"
)

// resolve walks the cache tree by exact id match. The root path resolves to
// the top-level directory. Must run on the cache's owner goroutine.
func resolve(c cache.Cache, vp data.VirtualPath) (*cache.Item, error) {
	current := c.Root()
	if current == nil {
		return nil, errs.NotFound(nil, vp.String())
	}

	for _, segment := range vp.Segments() {
		if !current.IsDir() {
			return nil, errs.NotDirectory(vp.String())
		}

		current = current.Child(segment)
		if current == nil {
			return nil, errs.NotFound(nil, vp.String())
		}
	}

	return current, nil
}

// resolveDir is resolve restricted to directories.
func resolveDir(c cache.Cache, vp data.VirtualPath) (*cache.Item, error) {
	item, err := resolve(c, vp)
	if err != nil {
		return nil, err
	}
	if !item.IsDir() {
		return nil, errs.NotDirectory(vp.String())
	}

	return item, nil
}
