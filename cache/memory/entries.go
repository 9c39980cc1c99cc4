package memory

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/desktop"
	"github.com/spf13/afero"
)

// entry is a parsed desktop entry, reused while the file's size and
// modification time are unchanged.
type entry struct {
	size    int64
	modTime time.Time

	// nil for entries that must not be shown (NoDisplay, Hidden, not an application)
	app *application
}

type application struct {
	id         string
	name       string
	icon       string
	file       string
	categories data.CategorySet
	onlyShowIn []string
	notShowIn  []string
}

// scanApplications collects the applications of every applications dir.
// Directories are visited lowest precedence first so that entries of the
// same id in higher precedence dirs replace or hide earlier ones.
func (c *Cache) scanApplications(ctx context.Context) (map[string]*application, error) {
	apps := make(map[string]*application)
	var errs data.Errors

	for i := len(c.appDirs) - 1; i >= 0; i-- {
		dir := c.appDirs[i]

		err := afero.Walk(c.fs, dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				if path == dir && errors.Is(err, fs.ErrNotExist) {
					return filepath.SkipDir
				}
				errs.Add(err)
				return nil
			}
			if err := data.CheckCancelled(ctx); err != nil {
				return err
			}
			if info.IsDir() || !c.pattern.Match(info.Name()) {
				return nil
			}

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			id := strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")

			app, err := c.loadEntry(path, id, info)
			if err != nil {
				c.log.Warn("Skipping unreadable desktop entry '%s': %v", path, err)
				errs.Add(err)
				return nil
			}

			if app == nil {
				delete(apps, id)
			} else {
				apps[id] = app
			}
			return nil
		})
		if err != nil && !errors.Is(err, filepath.SkipDir) {
			return nil, err
		}
	}

	if errs.Len() > 0 {
		c.log.Debug("Scanned applications with %d errors: %v", errs.Len(), errs.Errors())
	}

	return apps, nil
}

func (c *Cache) loadEntry(path, id string, info os.FileInfo) (*application, error) {
	if cached, ok := c.entries.Get(path); ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		if cached.app == nil {
			return nil, nil
		}
		app := *cached.app
		app.id = id
		return &app, nil
	}

	parsed, err := desktop.Load(c.fs, path)
	if err != nil {
		return nil, err
	}
	metricEntryParsesTotal.Inc()

	e := &entry{
		size:    info.Size(),
		modTime: info.ModTime(),
	}
	if parsed.Get(desktop.KeyType) == desktop.TypeApplication &&
		!parsed.Bool(desktop.KeyNoDisplay) && !parsed.Bool(desktop.KeyHidden) {
		e.app = &application{
			id:         id,
			name:       parsed.Get(desktop.KeyName),
			icon:       parsed.Get(desktop.KeyIcon),
			file:       path,
			categories: parsed.Categories(),
			onlyShowIn: parsed.List(desktop.KeyOnlyShowIn),
			notShowIn:  parsed.List(desktop.KeyNotShowIn),
		}
	}
	c.entries.Add(path, e)

	return e.app, nil
}

// loadDirectory reads Name and Icon of a .directory file.
func (c *Cache) loadDirectory(name string) (string, string, bool) {
	for _, dir := range c.directoryDirs {
		parsed, err := desktop.Load(c.fs, filepath.Join(dir, name))
		if err != nil {
			continue
		}
		return parsed.Get(desktop.KeyName), parsed.Get(desktop.KeyIcon), true
	}

	return "", "", false
}
