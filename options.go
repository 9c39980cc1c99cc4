package menufs

import (
	"fmt"

	"github.com/mwantia/menufs/log"
	"github.com/mwantia/menufs/menu"
	"github.com/spf13/afero"
)

type Options struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	Logger        *log.Logger

	Fs afero.Fs
	// Active desktop environment; empty shows everything.
	Desktop string
	// Writable applications directory every mutation writes into.
	UserAppDir string

	MenuFile string
	Loader   *menu.Loader
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		LogLevel: log.Info,
		Fs:       afero.NewOsFs(),
	}
}

func WithLogLevel(logLevel log.LogLevel) Option {
	return func(opts *Options) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() Option {
	return func(opts *Options) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) Option {
	return func(opts *Options) error {
		opts.LogFile = logFile
		return nil
	}
}

// WithLogger replaces the logger built from the log options.
func WithLogger(logger *log.Logger) Option {
	return func(opts *Options) error {
		opts.Logger = logger
		return nil
	}
}

func WithFs(fs afero.Fs) Option {
	return func(opts *Options) error {
		if fs == nil {
			return fmt.Errorf("filesystem cannot be nil")
		}
		opts.Fs = fs
		return nil
	}
}

func WithDesktop(desktop string) Option {
	return func(opts *Options) error {
		opts.Desktop = desktop
		return nil
	}
}

func WithUserAppDir(dir string) Option {
	return func(opts *Options) error {
		opts.UserAppDir = dir
		return nil
	}
}

// WithMenuFile sets the .menu file reloaded for every category update.
func WithMenuFile(path string) Option {
	return func(opts *Options) error {
		opts.MenuFile = path
		return nil
	}
}

func WithLoader(loader *menu.Loader) Option {
	return func(opts *Options) error {
		opts.Loader = loader
		return nil
	}
}
