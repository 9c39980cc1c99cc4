package cache

import (
	"context"

	"github.com/google/uuid"
)

// Cache holds the live, already merged menu item tree. Implementations are
// not safe for concurrent use: every method must run on the goroutine that
// owns the cache, which callers reach through a dispatch.Dispatcher.
type Cache interface {
	// Returns the identifier name defined for this cache
	GetName() string
	// Open builds or restores the initial item tree.
	Open(ctx context.Context) error
	// Close releases watches and stores held by the cache.
	Close(ctx context.Context) error

	// GetCapabilities returns a list of capabilities supported by this cache.
	GetCapabilities() *Capabilities

	// Root returns the top-level directory item, or nil before the first build.
	Root() *Item
	// FindApp looks up an application by desktop id across the whole cache.
	FindApp(id string) *Item

	// AddReloadNotify registers fn to run on the owner goroutine after every reload.
	AddReloadNotify(fn ReloadFunc) uuid.UUID
	// RemoveReloadNotify drops a subscription; unknown ids are ignored.
	RemoveReloadNotify(id uuid.UUID)
}

// Reloader is implemented by caches that can rebuild on request.
type Reloader interface {
	Reload(ctx context.Context) error
}
