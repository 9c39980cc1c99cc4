package menufs

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/dispatch"
)

type MonitorState int32

const (
	MonitorArmed MonitorState = iota
	MonitorDiffing
	MonitorCancelled
)

func (s MonitorState) String() string {
	switch s {
	case MonitorArmed:
		return "armed"
	case MonitorDiffing:
		return "diffing"
	case MonitorCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

const monitorBuffer = 64

// Monitor reports changes of one directory after every cache reload.
// A monitor whose directory stops resolving emits a directory Deleted event
// and cancels itself.
type Monitor struct {
	id   uuid.UUID
	m    *MenuFileSystem
	path data.VirtualPath

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once

	state        atomic.Int32
	subscription uuid.UUID
	before       []SnapshotEntry

	events chan data.Event
	wake   chan struct{}
	done   chan struct{}
}

// Monitor starts watching the directory at path. The returned monitor lives
// until Cancel is called or the directory disappears; ctx only bounds setup.
func (m *MenuFileSystem) Monitor(ctx context.Context, path string) (*Monitor, error) {
	vp, err := data.ParsePath(path)
	if err != nil {
		return nil, err
	}

	mon := &Monitor{
		id:     uuid.New(),
		m:      m,
		path:   vp,
		events: make(chan data.Event, monitorBuffer),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	mon.ctx, mon.cancel = context.WithCancel(context.Background())

	if err := m.call(ctx, func(ctx context.Context, c cache.Cache) error {
		dir, err := resolveDir(c, vp)
		if err != nil {
			return err
		}

		if !c.GetCapabilities().Contains(cache.CapabilityReload) {
			m.log.Warn("Cache '%s' never reloads, monitor on '%s' will stay silent", c.GetName(), vp)
		}

		mon.before = snapshot(dir, m.desktop)
		// Runs on the owner goroutine; it must only signal.
		mon.subscription = c.AddReloadNotify(func() {
			select {
			case mon.wake <- struct{}{}:
			default:
			}
		})
		return nil
	}); err != nil {
		mon.cancel()
		return nil, err
	}

	m.monitors.Store(mon.id, mon)
	metricMonitors.Inc()
	m.log.Debug("Monitor '%s' armed on '%s' with %d item(s)", mon.id, vp, len(mon.before))

	go mon.run()

	return mon, nil
}

// Watch is Monitor bound to ctx: the monitor is cancelled once ctx is done.
func (m *MenuFileSystem) Watch(ctx context.Context, path string) (<-chan data.Event, error) {
	mon, err := m.Monitor(ctx, path)
	if err != nil {
		return nil, err
	}

	go func() {
		select {
		case <-ctx.Done():
			mon.Cancel()
		case <-mon.Done():
		}
	}()

	return mon.Events(), nil
}

func (mon *Monitor) ID() uuid.UUID {
	return mon.id
}

func (mon *Monitor) Path() data.VirtualPath {
	return mon.path
}

// Events is closed once the monitor reaches the cancelled state.
func (mon *Monitor) Events() <-chan data.Event {
	return mon.events
}

func (mon *Monitor) Done() <-chan struct{} {
	return mon.done
}

func (mon *Monitor) State() MonitorState {
	return MonitorState(mon.state.Load())
}

// Cancel stops the monitor. No events are emitted afterwards.
func (mon *Monitor) Cancel() {
	mon.state.Store(int32(MonitorCancelled))
	mon.cancel()
}

func (mon *Monitor) run() {
	defer mon.finish()

	for {
		select {
		case <-mon.ctx.Done():
			return
		case <-mon.wake:
		}

		if !mon.state.CompareAndSwap(int32(MonitorArmed), int32(MonitorDiffing)) {
			return
		}
		if !mon.diff() {
			return
		}
		if !mon.state.CompareAndSwap(int32(MonitorDiffing), int32(MonitorArmed)) {
			return
		}
	}
}

// diff re-resolves the directory and emits the changes since the last
// snapshot. It returns false once the monitor must stop.
func (mon *Monitor) diff() bool {
	after, err := dispatch.Do(mon.ctx, mon.m.dispatcher, func(ctx context.Context) ([]SnapshotEntry, error) {
		dir, err := resolveDir(mon.m.cache, mon.path)
		if err != nil {
			return nil, err
		}

		return snapshot(dir, mon.m.desktop), nil
	})

	switch {
	case err == nil:
	case errors.Is(err, data.ErrNotFound), errors.Is(err, data.ErrNotDirectory):
		mon.emit(data.Event{Kind: data.EventDeleted, Path: mon.path.String()})
		return false
	default:
		if !errors.Is(err, data.ErrCancelled) {
			mon.m.log.Warn("Monitor '%s' stopped: %v", mon.id, err)
		}
		return false
	}

	diff := Diff(mon.before, after)
	mon.before = after

	for _, id := range diff.Changed {
		if !mon.emit(data.Event{Kind: data.EventChanged, ID: id, Path: mon.path.Join(id).String()}) {
			return false
		}
	}
	for _, id := range diff.Deleted {
		if !mon.emit(data.Event{Kind: data.EventDeleted, ID: id, Path: mon.path.Join(id).String()}) {
			return false
		}
	}
	for _, id := range diff.Created {
		if !mon.emit(data.Event{Kind: data.EventCreated, ID: id, Path: mon.path.Join(id).String()}) {
			return false
		}
	}

	return true
}

func (mon *Monitor) emit(event data.Event) bool {
	select {
	case <-mon.ctx.Done():
		return false
	default:
	}

	select {
	case mon.events <- event:
		metricMonitorEventsTotal.WithLabelValues(event.Kind.String()).Inc()
		return true
	case <-mon.ctx.Done():
		return false
	}
}

func (mon *Monitor) finish() {
	mon.once.Do(func() {
		mon.state.Store(int32(MonitorCancelled))
		mon.cancel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mon.m.call(ctx, func(ctx context.Context, c cache.Cache) error {
			c.RemoveReloadNotify(mon.subscription)
			return nil
		}); err != nil {
			mon.m.log.Debug("Monitor '%s' could not unsubscribe: %v", mon.id, err)
		}

		close(mon.events)
		mon.m.monitors.Delete(mon.id)
		metricMonitors.Dec()
		mon.m.log.Debug("Monitor '%s' on '%s' cancelled", mon.id, mon.path)

		close(mon.done)
	})
}

// SnapshotEntry holds the attributes of a child whose change is reported.
type SnapshotEntry struct {
	ID      string
	Name    string
	Icon    string
	Visible bool
}

// SnapshotDiff partitions two snapshots by id.
type SnapshotDiff struct {
	Changed []string
	Deleted []string
	Created []string
}

func (d SnapshotDiff) Empty() bool {
	return len(d.Changed) == 0 && len(d.Deleted) == 0 && len(d.Created) == 0
}

func snapshot(dir *cache.Item, desktop string) []SnapshotEntry {
	entries := make([]SnapshotEntry, 0, len(dir.Children))
	for _, child := range dir.Children {
		if child == nil || child.Kind == data.KindSeparator {
			continue
		}

		entries = append(entries, SnapshotEntry{
			ID:      child.ID,
			Name:    child.Name,
			Icon:    child.Icon,
			Visible: child.IsDir() || child.IsVisible(desktop),
		})
	}

	return entries
}

// Diff computes Created (after only), Deleted (before only) and Changed (in
// both with differing name, icon or visibility). Deleted keeps the order of
// before; Changed and Created keep the order of after.
func Diff(before, after []SnapshotEntry) SnapshotDiff {
	previous := make(map[string]SnapshotEntry, len(before))
	for _, entry := range before {
		previous[entry.ID] = entry
	}
	current := make(map[string]struct{}, len(after))

	var diff SnapshotDiff
	for _, entry := range after {
		if _, seen := current[entry.ID]; seen {
			continue
		}
		current[entry.ID] = struct{}{}

		old, existed := previous[entry.ID]
		switch {
		case !existed:
			diff.Created = append(diff.Created, entry.ID)
		case old != entry:
			diff.Changed = append(diff.Changed, entry.ID)
		}
	}

	for _, entry := range before {
		if _, kept := current[entry.ID]; !kept && !slices.Contains(diff.Deleted, entry.ID) {
			diff.Deleted = append(diff.Deleted, entry.ID)
		}
	}

	return diff
}
