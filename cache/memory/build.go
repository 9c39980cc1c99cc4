package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/menu"
	"github.com/tidwall/btree"
)

// build loads the merged menu and allocates applications to its directories.
func (c *Cache) build(ctx context.Context) (*cache.Item, *btree.Map[string, *cache.Item], error) {
	tree, err := c.loader.Load(ctx, c.menuFile)
	if err != nil {
		return nil, nil, err
	}

	apps, err := c.scanApplications(ctx)
	if err != nil {
		return nil, nil, err
	}

	index := btree.NewMap[string, *cache.Item](0)
	for id, app := range apps {
		index.Set(id, &cache.Item{
			ID:         id,
			Name:       app.name,
			Icon:       app.icon,
			Kind:       data.KindApplication,
			FilePath:   app.file,
			OnlyShowIn: app.onlyShowIn,
			NotShowIn:  app.notShowIn,
		})
	}

	root, err := c.buildMenu(ctx, tree, tree.Root(), apps, index)
	if err != nil {
		return nil, nil, err
	}

	c.log.Debug("Built tree from '%s' with %d applications", c.menuFile, index.Len())
	return root, index, nil
}

func (c *Cache) buildMenu(ctx context.Context, tree *menu.Tree, node menu.NodeID,
	apps map[string]*application, index *btree.Map[string, *cache.Item]) (*cache.Item, error) {
	if err := data.CheckCancelled(ctx); err != nil {
		return nil, err
	}

	name := tree.MenuName(node)
	dir := &cache.Item{
		ID:   name,
		Name: name,
		Kind: data.KindDirectory,
	}
	if file := directoryFile(tree, node); file != "" {
		if displayName, icon, ok := c.loadDirectory(file); ok {
			if displayName != "" {
				dir.Name = displayName
			}
			dir.Icon = icon
		}
	}

	for _, submenu := range tree.Submenus(node) {
		child, err := c.buildMenu(ctx, tree, submenu, apps, index)
		if err != nil {
			return nil, err
		}
		dir.Children = append(dir.Children, child)
	}

	var allocated []*cache.Item
	index.Scan(func(id string, item *cache.Item) bool {
		if included(tree, node, id, apps[id].categories) {
			allocated = append(allocated, item)
		}
		return true
	})
	slices.SortStableFunc(allocated, func(a, b *cache.Item) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	dir.Children = append(dir.Children, allocated...)

	return dir, nil
}

// included reports whether an application belongs to a menu: at least one
// Include matches and no Exclude does.
func included(tree *menu.Tree, node menu.NodeID, id string, categories data.CategorySet) bool {
	for _, exclude := range tree.Rules(node, menu.TagExclude) {
		if tree.Matches(exclude, id, categories) {
			return false
		}
	}
	for _, include := range tree.Rules(node, menu.TagInclude) {
		if tree.Matches(include, id, categories) {
			return true
		}
	}

	return false
}

// directoryFile returns the last <Directory> of a menu; later ones win.
func directoryFile(tree *menu.Tree, node menu.NodeID) string {
	file := ""
	for _, child := range tree.Children(node) {
		if n, ok := tree.Node(child); ok && n.Element == "Directory" {
			file = n.Text
		}
	}

	return file
}
