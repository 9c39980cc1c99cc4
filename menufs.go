// Package menufs exposes an XDG application menu as a browsable, writable
// virtual filesystem. Category directories come from the merged .menu
// definition and applications from desktop entries; writes translate into
// edits of the Categories and NoDisplay keys of a single backing file.
package menufs

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/cmd"
	"github.com/mwantia/menufs/cmd/builtin"
	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/dispatch"
	"github.com/mwantia/menufs/log"
	"github.com/mwantia/menufs/menu"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/spf13/afero"
)

type MenuFileSystem struct {
	// Serializes mutations so menu loads and category updates never interleave.
	mu sync.Mutex

	cache      cache.Cache
	dispatcher *dispatch.Dispatcher

	fs         afero.Fs
	log        *log.Logger
	loader     *menu.Loader
	menuFile   string
	desktop    string
	userAppDir string

	commands *cmd.Manager
	monitors *xsync.MapOf[uuid.UUID, *Monitor]
}

var _ FileSystem = (*MenuFileSystem)(nil)

// New creates the filesystem facade over c. Every cache access is routed
// through d, which must be served by the goroutine owning c.
func New(c cache.Cache, d *dispatch.Dispatcher, opts ...Option) (*MenuFileSystem, error) {
	if c == nil {
		return nil, fmt.Errorf("cache cannot be nil")
	}
	if d == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}

	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if options.MenuFile == "" {
		return nil, fmt.Errorf("menu file must be configured")
	}
	if options.UserAppDir == "" {
		return nil, fmt.Errorf("user applications directory must be configured")
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("menufs", options.LogLevel, options.LogFile, options.NoTerminalLog)
	}

	loader := options.Loader
	if loader == nil {
		var err error
		loader, err = menu.NewLoader(menu.WithFs(options.Fs), menu.WithLogger(logger.Named("menufs/menu")))
		if err != nil {
			return nil, fmt.Errorf("failed to create menu loader: %w", err)
		}
	}

	m := &MenuFileSystem{
		cache:      c,
		dispatcher: d,
		fs:         options.Fs,
		log:        logger,
		loader:     loader,
		menuFile:   options.MenuFile,
		desktop:    options.Desktop,
		userAppDir: options.UserAppDir,
		commands:   cmd.NewManager(),
		monitors:   xsync.NewMapOf[uuid.UUID, *Monitor](),
	}

	for _, command := range builtin.Commands() {
		if err := m.commands.Register(command); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Desktop returns the desktop environment used for visibility.
func (m *MenuFileSystem) Desktop() string {
	return m.desktop
}

// Shutdown cancels every live monitor and waits for them to finish.
func (m *MenuFileSystem) Shutdown(ctx context.Context) error {
	var monitors []*Monitor
	m.monitors.Range(func(_ uuid.UUID, monitor *Monitor) bool {
		monitors = append(monitors, monitor)
		return true
	})

	for _, monitor := range monitors {
		monitor.Cancel()
	}
	for _, monitor := range monitors {
		select {
		case <-monitor.Done():
		case <-ctx.Done():
			return data.Cancelled(ctx)
		}
	}

	m.log.Debug("Shutdown cancelled %d monitor(s)", len(monitors))
	return nil
}

// Monitors returns the number of live monitors.
func (m *MenuFileSystem) Monitors() int {
	return m.monitors.Size()
}

func (m *MenuFileSystem) RegisterCommand(command cmd.Command) error {
	return m.commands.Register(command)
}

func (m *MenuFileSystem) UnregisterCommand(name string) (bool, error) {
	if err := m.commands.Unregister(name); err != nil {
		return false, err
	}

	return true, nil
}

// Execute runs a registered command against this filesystem, writing its output to w.
func (m *MenuFileSystem) Execute(ctx context.Context, w io.Writer, args ...string) (int, error) {
	return m.commands.Execute(ctx, m, w, args...)
}

// call runs fn on the cache's owner goroutine.
func (m *MenuFileSystem) call(ctx context.Context, fn func(ctx context.Context, c cache.Cache) error) error {
	return m.dispatcher.Call(ctx, func(ctx context.Context) error {
		return fn(ctx, m.cache)
	})
}

// Commands returns every registered command ordered by name.
func (m *MenuFileSystem) Commands() []cmd.Command {
	return m.commands.List()
}
