package menufs

import (
	"context"
	"io"

	"github.com/mwantia/menufs/cmd"
)

// FileSystem is the public surface of a menu filesystem. Paths are
// menu://applications/... URIs or bare category paths.
type FileSystem interface {
	cmd.API

	// Enumerate returns a lazy, non-restartable sequence over a directory.
	Enumerate(ctx context.Context, path string) (*Enumerator, error)

	// Monitor watches a directory and reports changes after every cache reload.
	Monitor(ctx context.Context, path string) (*Monitor, error)

	// Shutdown cancels every live monitor.
	Shutdown(ctx context.Context) error

	RegisterCommand(command cmd.Command) error
	UnregisterCommand(name string) (bool, error)
	Execute(ctx context.Context, w io.Writer, args ...string) (int, error)
}
