package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/log"
	"github.com/mwantia/menufs/menu"
	"github.com/spf13/afero"
	"github.com/tidwall/btree"
)

// Cache builds its item tree in memory from a .menu file and the desktop
// entries found in the applications directories.
type Cache struct {
	fs     afero.Fs
	log    *log.Logger
	loader *menu.Loader
	store  SnapshotStore

	menuFile      string
	appDirs       []string
	directoryDirs []string

	pattern glob.Glob
	entries *lru.Cache[string, *entry]

	root     *cache.Item
	apps     *btree.Map[string, *cache.Item]
	notifier cache.Notifier
}

var (
	_ cache.Cache    = (*Cache)(nil)
	_ cache.Reloader = (*Cache)(nil)
)

func New(opts ...Option) (*Cache, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if options.MenuFile == "" {
		return nil, fmt.Errorf("memory: no menu file configured")
	}

	loader := options.Loader
	if loader == nil {
		var err error
		if loader, err = menu.NewLoader(menu.WithFs(options.Fs), menu.WithLogger(options.Logger.Named("menu"))); err != nil {
			return nil, err
		}
	}

	entries, err := lru.New[string, *entry](options.EntryCacheSize)
	if err != nil {
		return nil, err
	}

	return &Cache{
		fs:            options.Fs,
		log:           options.Logger,
		loader:        loader,
		store:         options.Store,
		menuFile:      options.MenuFile,
		appDirs:       options.AppDirs,
		directoryDirs: options.DirectoryDirs,
		pattern:       glob.MustCompile("*.desktop"),
		entries:       entries,
		apps:          btree.NewMap[string, *cache.Item](0),
	}, nil
}

// Returns the identifier name defined for this cache
func (*Cache) GetName() string {
	return "memory"
}

// Open restores the stored snapshot, if any, and then rebuilds. A failed
// rebuild is tolerated while a snapshot is being served.
func (c *Cache) Open(ctx context.Context) error {
	if c.store != nil {
		if err := c.store.Open(ctx); err != nil {
			c.log.Warn("Snapshots disabled, '%s' store unavailable: %v", c.store.GetName(), err)
			c.store = nil
		}
	}

	if c.store != nil {
		root, err := c.store.Load(ctx)
		if err == nil {
			c.publish(root, indexApplications(root))
			saved, _ := c.store.SavedAt(ctx)
			c.log.Info("Restored snapshot from '%s' store with %d applications (saved %s)",
				c.store.GetName(), c.apps.Len(), saved.Format(time.RFC3339))
		} else {
			c.log.Debug("No snapshot restored: %v", err)
		}
	}

	if err := c.Reload(ctx); err != nil {
		if c.root != nil {
			c.log.Warn("Serving snapshot after failed rebuild: %v", err)
			return nil
		}
		return err
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this cache.
func (c *Cache) Close(ctx context.Context) error {
	c.entries.Purge()
	c.apps.Clear()
	c.root = nil

	if c.store != nil {
		return c.store.Close(ctx)
	}

	return nil
}

// GetCapabilities returns a list of capabilities supported by this cache.
func (c *Cache) GetCapabilities() *cache.Capabilities {
	capabilities := &cache.Capabilities{
		Capabilities: []cache.Capability{
			cache.CapabilityReload,
			cache.CapabilityWatch,
		},
	}
	if c.store != nil {
		capabilities.Capabilities = append(capabilities.Capabilities, cache.CapabilitySnapshot)
	}

	return capabilities
}

func (c *Cache) Root() *cache.Item {
	return c.root
}

func (c *Cache) FindApp(id string) *cache.Item {
	item, _ := c.apps.Get(id)
	return item
}

func (c *Cache) AddReloadNotify(fn cache.ReloadFunc) uuid.UUID {
	return c.notifier.Add(fn)
}

func (c *Cache) RemoveReloadNotify(id uuid.UUID) {
	c.notifier.Remove(id)
}

// Reload rebuilds the tree and notifies subscribers. On failure the
// previously published tree stays in place.
func (c *Cache) Reload(ctx context.Context) error {
	root, apps, err := c.build(ctx)
	if err != nil {
		metricReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("memory: reload failed: %w", err)
	}

	c.publish(root, apps)
	metricReloadsTotal.WithLabelValues("ok").Inc()

	if c.store != nil {
		if err := c.store.Save(ctx, root); err != nil {
			c.log.Warn("Failed to save snapshot: %v", err)
		}
	}

	return nil
}

// SetRoot publishes root as if it had been built by a reload.
func (c *Cache) SetRoot(root *cache.Item) {
	c.publish(root, indexApplications(root))
}

func (c *Cache) publish(root *cache.Item, apps *btree.Map[string, *cache.Item]) {
	c.root = root
	c.apps = apps
	metricApplications.Set(float64(apps.Len()))

	c.log.Debug("Published tree with %d applications", apps.Len())
	c.notifier.Notify()
}

func indexApplications(root *cache.Item) *btree.Map[string, *cache.Item] {
	apps := btree.NewMap[string, *cache.Item](0)
	root.Walk(func(item *cache.Item) bool {
		if item.IsApplication() {
			if _, exists := apps.Get(item.ID); !exists {
				apps.Set(item.ID, item)
			}
		}
		return true
	})

	return apps
}
