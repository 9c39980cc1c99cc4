package menufs

import "github.com/mwantia/menufs/data"

// Standard menufs errors returned by MenuFileSystem operations.
var (
	// Path resolution errors
	ErrInvalidPath  = data.ErrInvalidPath
	ErrNotFound     = data.ErrNotFound
	ErrNotDirectory = data.ErrNotDirectory

	// Menu definition errors
	ErrParse = data.ErrParse
	ErrMerge = data.ErrMerge

	// Mutation errors
	ErrInvalidOperation = data.ErrInvalidOperation
	ErrUnsatisfiable    = data.ErrUnsatisfiable

	// Lifecycle errors
	ErrCancelled = data.ErrCancelled
	ErrClosed    = data.ErrClosed
	ErrStopped   = data.ErrStopped
)
