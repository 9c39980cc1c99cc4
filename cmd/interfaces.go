package cmd

import (
	"context"
	"io"

	"github.com/mwantia/menufs/data"
)

// API is the part of the menu filesystem commands operate on.
type API interface {
	// Stat returns the record of a directory or application.
	Stat(ctx context.Context, path string) (*data.ItemInfo, error)

	// Lookup reports whether path resolves; a missing path is not an error.
	Lookup(ctx context.Context, path string) (bool, error)

	// ReadDirectory lists the visible children of a directory.
	ReadDirectory(ctx context.Context, path string) ([]*data.ItemInfo, error)

	// ReadFile returns the desktop entry backing an application.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// Create adds a new application below a category directory.
	Create(ctx context.Context, path string, content []byte) error

	// Replace overwrites the user's copy of an application.
	Replace(ctx context.Context, path string, content []byte) error

	// Delete hides an application.
	Delete(ctx context.Context, path string) error

	// Move relocates an application to another category directory.
	Move(ctx context.Context, src, dst string) error

	// Watch streams change events of a directory until ctx is done.
	Watch(ctx context.Context, path string) (<-chan data.Event, error)
}

// Command represents an executable command within the menu filesystem.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls -l [path]")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
