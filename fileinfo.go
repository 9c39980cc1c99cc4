package menufs

import (
	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/data"
)

// itemInfo materializes the record for item found at path. Applications
// not shown in the active desktop environment are marked hidden.
func itemInfo(item *cache.Item, path data.VirtualPath, desktop string) *data.ItemInfo {
	if item.IsDir() {
		return data.NewDirectoryInfo(path, item.ID, item.Name, item.Icon)
	}

	return data.NewApplicationInfo(path, item.ID, item.Name, item.Icon, item.FilePath, !item.IsVisible(desktop))
}
