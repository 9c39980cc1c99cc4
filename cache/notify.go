package cache

import (
	"sync"

	"github.com/google/uuid"
)

// ReloadFunc is called on the cache's owner goroutine after a reload.
type ReloadFunc func()

// Notifier keeps reload subscriptions in registration order.
type Notifier struct {
	mu    sync.Mutex
	order []uuid.UUID
	funcs map[uuid.UUID]ReloadFunc
}

func (n *Notifier) Add(fn ReloadFunc) uuid.UUID {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.funcs == nil {
		n.funcs = make(map[uuid.UUID]ReloadFunc)
	}

	id := uuid.New()
	n.funcs[id] = fn
	n.order = append(n.order, id)

	return id
}

func (n *Notifier) Remove(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.funcs[id]; !exists {
		return
	}

	delete(n.funcs, id)
	for i, current := range n.order {
		if current == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.funcs)
}

// Notify calls every subscriber. Subscribers may add or remove
// subscriptions while being notified.
func (n *Notifier) Notify() {
	n.mu.Lock()
	funcs := make([]ReloadFunc, 0, len(n.order))
	for _, id := range n.order {
		funcs = append(funcs, n.funcs[id])
	}
	n.mu.Unlock()

	for _, fn := range funcs {
		fn()
	}
}
