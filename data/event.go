package data

import "fmt"

// EventKind identifies a change reported by a directory monitor.
type EventKind int

const (
	EventCreated EventKind = iota
	EventChanged
	EventDeleted
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventChanged:
		return "changed"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is one change relative to a monitored directory. An empty ID
// refers to the monitored directory itself.
type Event struct {
	Kind EventKind `json:"kind"`
	ID   string    `json:"id,omitempty"`
	Path string    `json:"path"`
}

// IsDirectory reports whether the event concerns the monitored directory.
func (e Event) IsDirectory() bool {
	return e.ID == ""
}

func (e Event) String() string {
	if e.IsDirectory() {
		return fmt.Sprintf("%s %s/", e.Kind, e.Path)
	}

	return fmt.Sprintf("%s %s", e.Kind, e.Path)
}
