package menufs

import (
	"github.com/mwantia/menufs/data"
	errs "github.com/mwantia/menufs/data/errors"
	"github.com/mwantia/menufs/menu"
)

// updateCategories computes the category delta that moves an application
// with the current categories out of src (when set) and into dst. Every
// Include of src is unsatisfied, then the first satisfiable Include of dst
// is satisfied, then every Exclude of dst is unsatisfied.
func updateCategories(tree *menu.Tree, current data.CategorySet, src *data.VirtualPath, dst data.VirtualPath) (menu.Delta, error) {
	var delta menu.Delta

	if src != nil {
		node, ok := tree.FindMenu(src.Segments())
		if !ok {
			return menu.Delta{}, errs.NotFound(nil, src.String())
		}

		for _, rule := range tree.Rules(node, menu.TagInclude) {
			if !tree.Unsatisfy(rule, current, &delta) {
				return menu.Delta{}, errs.Unsatisfiable(nil, "cannot leave '%s'", src.String())
			}
		}
	}

	node, ok := tree.FindMenu(dst.Segments())
	if !ok {
		return menu.Delta{}, errs.NotFound(nil, dst.String())
	}

	included := false
	for _, rule := range tree.Rules(node, menu.TagInclude) {
		if tree.Satisfy(rule, current, &delta) {
			included = true
			break
		}
	}
	if !included {
		return menu.Delta{}, errs.Unsatisfiable(nil, "cannot enter '%s'", dst.String())
	}

	for _, rule := range tree.Rules(node, menu.TagExclude) {
		if !tree.Unsatisfy(rule, current, &delta) {
			return menu.Delta{}, errs.Unsatisfiable(nil, "cannot avoid exclusion from '%s'", dst.String())
		}
	}

	return delta, nil
}
