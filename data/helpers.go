package data

// NewDirectoryInfo creates the info record for a menu directory.
func NewDirectoryInfo(path VirtualPath, id, name, icon string) *ItemInfo {
	return &ItemInfo{
		ID:          id,
		DisplayName: name,
		Icon:        icon,
		Kind:        KindDirectory,
		Path:        path.String(),
	}
}

// NewApplicationInfo creates the info record for a desktop entry.
func NewApplicationInfo(path VirtualPath, id, name, icon, file string, hidden bool) *ItemInfo {
	return &ItemInfo{
		ID:          id,
		DisplayName: name,
		Icon:        icon,
		Kind:        KindApplication,
		Hidden:      hidden,
		Path:        path.String(),
		FilePath:    file,
	}
}
