package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/dispatch"
	"github.com/mwantia/menufs/log"
	"github.com/syncthing/notify"
	"github.com/thejerf/suture/v4"
)

// Notify does not block on sending to the channel, so it must be buffered.
const watchBuffer = 256

// Watcher rebuilds the cache when any of its source directories change.
// Bursts of events are coalesced into a single reload after a quiet period.
type Watcher struct {
	cache      *Cache
	dispatcher *dispatch.Dispatcher
	log        *log.Logger

	dirs     []string
	debounce time.Duration
}

var _ suture.Service = (*Watcher)(nil)

// Watcher returns a service watching the menu file's directory, every merge
// and applications directory. Reloads run on d's owner goroutine.
func (c *Cache) Watcher(d *dispatch.Dispatcher, debounce time.Duration) *Watcher {
	dirs := []string{filepath.Dir(c.menuFile)}
	dirs = append(dirs, c.loader.MergeDirs()...)
	dirs = append(dirs, c.appDirs...)
	dirs = append(dirs, c.directoryDirs...)

	var unique []string
	for _, dir := range dirs {
		if dir != "" && !slices.Contains(unique, dir) {
			unique = append(unique, dir)
		}
	}

	return &Watcher{
		cache:      c,
		dispatcher: d,
		log:        c.log.Named("watch"),
		dirs:       unique,
		debounce:   debounce,
	}
}

// Dirs returns the directories the watcher subscribes to.
func (w *Watcher) Dirs() []string {
	return slices.Clone(w.dirs)
}

func (w *Watcher) Serve(ctx context.Context) error {
	events := make(chan notify.EventInfo, watchBuffer)
	defer notify.Stop(events)

	watched := 0
	for _, dir := range w.dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			w.log.Debug("Not watching missing directory '%s'", dir)
			continue
		}
		if err := notify.Watch(filepath.Join(dir, "..."), events, notify.All); err != nil {
			w.log.Warn("Failed to watch '%s': %v", dir, err)
			continue
		}
		watched++
	}

	if watched == 0 {
		w.log.Warn("No directory could be watched, reloads are manual only")
	} else {
		w.log.Info("Watching %d directories", watched)
	}

	return w.run(ctx, events)
}

func (w *Watcher) String() string {
	return fmt.Sprintf("memory.Watcher@%p", w)
}

// run coalesces events and reloads once the debounce period passed
// without further events.
func (w *Watcher) run(ctx context.Context, events <-chan notify.EventInfo) error {
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event := <-events:
			w.log.Debug("Received %s for '%s'", event.Event(), event.Path())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			err := w.dispatcher.Call(ctx, w.cache.Reload)
			if errors.Is(err, data.ErrCancelled) || errors.Is(err, data.ErrStopped) {
				return err
			}
			if err != nil {
				w.log.Error("Failed to reload cache: %v", err)
			}
		}
	}
}
