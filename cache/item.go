package cache

import (
	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/desktop"
)

// Item is one node of the cache tree. Items are immutable once a tree has
// been published; a reload builds and publishes a new tree.
type Item struct {
	ID   string
	Name string
	Icon string
	Kind data.ItemKind

	// Backing desktop entry (applications only)
	FilePath   string
	OnlyShowIn []string
	NotShowIn  []string

	Children []*Item
}

func (i *Item) IsDir() bool {
	return i != nil && i.Kind == data.KindDirectory
}

func (i *Item) IsApplication() bool {
	return i != nil && i.Kind == data.KindApplication
}

// IsVisible evaluates OnlyShowIn/NotShowIn for a desktop environment.
// An empty desktop shows everything.
func (i *Item) IsVisible(desktopName string) bool {
	return desktop.Visible(desktopName, i.OnlyShowIn, i.NotShowIn)
}

// Child returns the direct child with the given id.
func (i *Item) Child(id string) *Item {
	if i == nil {
		return nil
	}
	for _, child := range i.Children {
		if child != nil && child.ID == id {
			return child
		}
	}

	return nil
}

// Walk visits i and every descendant depth-first.
func (i *Item) Walk(fn func(*Item) bool) bool {
	if i == nil {
		return true
	}
	if !fn(i) {
		return false
	}
	for _, child := range i.Children {
		if !child.Walk(fn) {
			return false
		}
	}

	return true
}

// Clone deep copies the item tree.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}

	clone := *i
	clone.OnlyShowIn = append([]string(nil), i.OnlyShowIn...)
	clone.NotShowIn = append([]string(nil), i.NotShowIn...)
	clone.Children = make([]*Item, 0, len(i.Children))
	for _, child := range i.Children {
		clone.Children = append(clone.Children, child.Clone())
	}

	return &clone
}
