package cache

import (
	"slices"
	"strings"
)

type Capability string

const (
	// Rebuilds its tree when Reload is called
	CapabilityReload Capability = "reload"
	// Watches menu and application directories for changes
	CapabilityWatch Capability = "watch"
	// Persists and restores snapshots of its tree
	CapabilitySnapshot Capability = "snapshot"
)

// Capabilities describes what a cache supports
type Capabilities struct {
	Capabilities []Capability
}

// Contains checks if a capability is supported
func (c *Capabilities) Contains(capability Capability) bool {
	return c != nil && slices.Contains(c.Capabilities, capability)
}

func (c *Capabilities) String() string {
	if c == nil || len(c.Capabilities) == 0 {
		return "none"
	}

	names := make([]string, 0, len(c.Capabilities))
	for _, capability := range c.Capabilities {
		names = append(names, string(capability))
	}

	return strings.Join(names, ",")
}
