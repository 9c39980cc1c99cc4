package memory

import (
	"context"
	"time"

	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/log"
	"github.com/mwantia/menufs/menu"
	"github.com/spf13/afero"
)

// SnapshotStore persists the published tree between runs.
type SnapshotStore interface {
	GetName() string
	Open(ctx context.Context) error
	Save(ctx context.Context, root *cache.Item) error
	Load(ctx context.Context) (*cache.Item, error)
	SavedAt(ctx context.Context) (time.Time, error)
	Close(ctx context.Context) error
}

type Options struct {
	Fs     afero.Fs
	Logger *log.Logger
	Loader *menu.Loader

	// Merged .menu file the tree is built from
	MenuFile string
	// Applications directories, highest precedence first
	AppDirs []string
	// desktop-directories directories, highest precedence first
	DirectoryDirs []string

	// Optional; closed together with the cache
	Store SnapshotStore

	EntryCacheSize int
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		Fs:             afero.NewOsFs(),
		Logger:         log.Discard(),
		EntryCacheSize: 512,
	}
}

func WithFs(fs afero.Fs) Option {
	return func(opts *Options) error {
		opts.Fs = fs
		return nil
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(opts *Options) error {
		opts.Logger = logger
		return nil
	}
}

// WithLoader sets the loader used for the menu file. By default a loader
// over the cache's fs without config dirs is used.
func WithLoader(loader *menu.Loader) Option {
	return func(opts *Options) error {
		opts.Loader = loader
		return nil
	}
}

func WithMenuFile(path string) Option {
	return func(opts *Options) error {
		opts.MenuFile = path
		return nil
	}
}

func WithAppDirs(dirs ...string) Option {
	return func(opts *Options) error {
		opts.AppDirs = dirs
		return nil
	}
}

func WithDirectoryDirs(dirs ...string) Option {
	return func(opts *Options) error {
		opts.DirectoryDirs = dirs
		return nil
	}
}

func WithStore(store SnapshotStore) Option {
	return func(opts *Options) error {
		opts.Store = store
		return nil
	}
}

func WithEntryCacheSize(size int) Option {
	return func(opts *Options) error {
		opts.EntryCacheSize = size
		return nil
	}
}
