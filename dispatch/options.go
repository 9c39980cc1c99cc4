package dispatch

import "github.com/mwantia/menufs/log"

type Options struct {
	Name   string
	Logger *log.Logger
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		Name:   "cache",
		Logger: log.Discard(),
	}
}

func WithName(name string) Option {
	return func(opts *Options) error {
		opts.Name = name
		return nil
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(opts *Options) error {
		opts.Logger = logger
		return nil
	}
}
