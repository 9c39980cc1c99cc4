// Package dispatch confines a single-threaded resource to one owner
// goroutine. Callers hand it closures through Call, which blocks until the
// owner has run the closure and replied.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/log"
	"github.com/thejerf/suture/v4"
)

// Func runs on the owner goroutine. The ctx it receives marks the owner, so
// nested Calls made with it run inline instead of deadlocking.
type Func func(ctx context.Context) error

type request struct {
	ctx   context.Context
	fn    Func
	reply chan error
}

type homeKey struct{}

type Dispatcher struct {
	name string
	log  *log.Logger

	requests chan request
	closed   chan struct{}
	once     sync.Once
}

var _ suture.Service = (*Dispatcher)(nil)

func New(opts ...Option) (*Dispatcher, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	return &Dispatcher{
		name:     options.Name,
		log:      options.Logger,
		requests: make(chan request),
		closed:   make(chan struct{}),
	}, nil
}

// Serve runs the owner loop until ctx is done or Close is called.
func (d *Dispatcher) Serve(ctx context.Context) error {
	d.log.Debug("Dispatcher '%s' started", d.name)
	defer d.log.Debug("Dispatcher '%s' stopped", d.name)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.closed:
			return suture.ErrDoNotRestart
		case req := <-d.requests:
			req.reply <- d.execute(req.ctx, req.fn)
		}
	}
}

// Close stops the owner loop permanently; pending and later Calls fail with ErrStopped.
func (d *Dispatcher) Close() error {
	d.once.Do(func() {
		close(d.closed)
	})

	return nil
}

func (d *Dispatcher) String() string {
	return fmt.Sprintf("dispatch.Dispatcher@%s", d.name)
}

// InHome reports whether ctx was handed out by this dispatcher's owner loop.
func (d *Dispatcher) InHome(ctx context.Context) bool {
	home, ok := ctx.Value(homeKey{}).(*Dispatcher)
	return ok && home == d
}

// Call runs fn on the owner goroutine and waits for its result.
// Cancellation is checked before the hand-off and again after the reply.
func (d *Dispatcher) Call(ctx context.Context, fn Func) error {
	if d.InHome(ctx) {
		return fn(ctx)
	}

	started := time.Now()
	err := d.call(ctx, fn)
	observe(d.name, started, err)

	return err
}

func (d *Dispatcher) call(ctx context.Context, fn Func) error {
	if err := data.CheckCancelled(ctx); err != nil {
		return err
	}
	select {
	case <-d.closed:
		return data.ErrStopped
	default:
	}

	req := request{
		ctx:   ctx,
		fn:    fn,
		reply: make(chan error, 1),
	}

	select {
	case d.requests <- req:
	case <-ctx.Done():
		return data.Cancelled(ctx)
	case <-d.closed:
		return data.ErrStopped
	}

	// The owner always replies once it accepted the request.
	err := <-req.reply

	if cerr := data.CheckCancelled(ctx); cerr != nil {
		return cerr
	}

	return err
}

func (d *Dispatcher) execute(ctx context.Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Recovered panic in dispatched call: %v", r)
			err = fmt.Errorf("dispatch: panic in dispatched call: %v", r)
		}
	}()

	return fn(context.WithValue(ctx, homeKey{}, d))
}

// Do is Call for closures returning a value.
func Do[T any](ctx context.Context, d *Dispatcher, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := d.Call(ctx, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
