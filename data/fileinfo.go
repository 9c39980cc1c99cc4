package data

import (
	"encoding/json"
	"strings"
)

// ItemInfo is the metadata record produced for every enumerated or stat'ed
// virtual menu entry.
type ItemInfo struct {
	// Cache id (menu name for directories, desktop id for applications)
	ID string `json:"id"`

	// Localized display name as provided by the cache
	DisplayName string `json:"display_name"`

	// Icon name or absolute icon path
	Icon string `json:"icon"`

	// Directory or application
	Kind ItemKind `json:"kind"`

	// Hidden for the active desktop environment
	Hidden bool `json:"hidden"`

	// Virtual path of this entry, without the menu:// prefix
	Path string `json:"path"`

	// Backing desktop entry file (applications only)
	FilePath string `json:"file_path,omitempty"`
}

// Marshal provides JSON serialization for ItemInfo.
func (ii *ItemInfo) Marshal() ([]byte, error) {
	return json.Marshal(ii)
}

// IsDir returns true if this entry is a menu directory.
func (ii *ItemInfo) IsDir() bool {
	return ii.Kind == KindDirectory
}

// IsApplication returns true if this entry is backed by a desktop entry.
func (ii *ItemInfo) IsApplication() bool {
	return ii.Kind == KindApplication
}

// URI returns the menu:// address of this entry.
func (ii *ItemInfo) URI() string {
	return Scheme + "://" + RootSegment + "/" + strings.TrimPrefix(ii.Path, "/")
}

// Clone creates a copy of the item info.
func (ii *ItemInfo) Clone() *ItemInfo {
	clone := *ii
	return &clone
}
