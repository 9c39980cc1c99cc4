package data

import (
	"context"
	"errors"
	"fmt"
	"sync"

	errs "github.com/mwantia/menufs/data/errors"
)

// Standard menufs errors that every layer wraps.
var (
	// Path resolution errors
	ErrInvalidPath  = errs.ErrInvalidPath
	ErrNotFound     = errs.ErrNotFound
	ErrNotDirectory = errs.ErrNotDirectory

	// Menu definition errors
	ErrParse = errs.ErrParse
	ErrMerge = errs.ErrMerge

	// Mutation errors
	ErrInvalidOperation = errs.ErrInvalidOperation
	ErrUnsatisfiable    = errs.ErrUnsatisfiable

	// Lifecycle errors
	ErrCancelled = errs.ErrCancelled
	ErrClosed    = errs.ErrClosed
	ErrStopped   = errs.ErrStopped
)

// Cancelled wraps the context error so callers can match either ErrCancelled
// or context.Canceled / context.DeadlineExceeded.
func Cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	return ErrCancelled
}

// CheckCancelled returns a cancellation error if ctx is already done.
func CheckCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return Cancelled(ctx)
	default:
		return nil
	}
}

// IsNotFound reports whether err is the ordinary "does not resolve" outcome.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.errors)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
