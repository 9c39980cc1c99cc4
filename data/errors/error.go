package errors

import (
	"errors"
	"fmt"
)

// Sentinels shared by every menufs package. The data package re-exports them.
var (
	ErrInvalidPath  = errors.New("menufs: invalid path detected")
	ErrNotFound     = errors.New("menufs: path does not resolve")
	ErrNotDirectory = errors.New("menufs: not a directory")

	ErrParse = errors.New("menufs: malformed menu definition")
	ErrMerge = errors.New("menufs: menu merge failed")

	ErrInvalidOperation = errors.New("menufs: invalid operation")
	ErrUnsatisfiable    = errors.New("menufs: category constraints unsatisfiable")

	ErrCancelled = errors.New("menufs: operation cancelled")
	ErrClosed    = errors.New("menufs: already closed")
	ErrStopped   = errors.New("menufs: dispatcher not running")
)

// newError wraps sentinel with a formatted message and an optional cause.
func newError(sentinel error, err error, format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", sentinel, text, err)
	}

	return fmt.Errorf("%w: %s", sentinel, text)
}

func InvalidPath(err error, path string) error {
	return newError(ErrInvalidPath, err, "'%s'", path)
}

func NotFound(err error, path string) error {
	return newError(ErrNotFound, err, "'%s'", path)
}

func NotDirectory(path string) error {
	return newError(ErrNotDirectory, nil, "'%s'", path)
}

func InvalidOperation(err error, format string, args ...any) error {
	return newError(ErrInvalidOperation, err, format, args...)
}

func Unsatisfiable(err error, format string, args ...any) error {
	return newError(ErrUnsatisfiable, err, format, args...)
}
