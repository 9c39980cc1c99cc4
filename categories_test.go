package menufs

import (
	"errors"
	"testing"

	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/menu"
)

const categoriesMenu = `<Menu>
  <Name>Applications</Name>
  <Menu>
    <Name>Graphics</Name>
    <Include><Category>Graphics</Category></Include>
    <Menu>
      <Name>Viewers</Name>
      <Include><And><Category>Graphics</Category><Category>Viewer</Category></And></Include>
      <Exclude><Category>Editor</Category></Exclude>
    </Menu>
  </Menu>
  <Menu>
    <Name>Office</Name>
    <Include><Category>Office</Category></Include>
    <Include><Category>Spreadsheet</Category></Include>
  </Menu>
  <Menu>
    <Name>Rules</Name>
  </Menu>
</Menu>`

func loadCategoriesMenu(t *testing.T) *menu.Tree {
	t.Helper()

	tree, err := menu.Parse("test.menu", []byte(categoriesMenu))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return tree
}

func TestUpdateCategories(t *testing.T) {
	tree := loadCategoriesMenu(t)
	graphics := data.NewPath("Graphics")

	tests := []struct {
		name     string
		current  data.CategorySet
		src      *data.VirtualPath
		dst      data.VirtualPath
		expected data.CategorySet
	}{
		{
			name:     "create nested",
			current:  data.CategorySet{"Editor"},
			dst:      data.NewPath("Graphics", "Viewers"),
			expected: data.CategorySet{"Graphics", "Viewer"},
		},
		{
			name:     "already included",
			current:  data.CategorySet{"Office", "Graphics"},
			dst:      data.NewPath("Office"),
			expected: data.CategorySet{"Office", "Graphics"},
		},
		{
			name:     "move out of source",
			current:  data.CategorySet{"Graphics", "2DGraphics"},
			src:      &graphics,
			dst:      data.NewPath("Office"),
			expected: data.CategorySet{"2DGraphics", "Office"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, err := updateCategories(tree, tt.current, tt.src, tt.dst)
			if err != nil {
				t.Fatalf("updateCategories failed: %v", err)
			}

			got := delta.Apply(tt.current)
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			for _, rule := range tree.Rules(mustFindMenu(t, tree, tt.dst), menu.TagInclude) {
				if tree.IsSatisfying(rule, got) {
					return
				}
			}
			t.Errorf("Expected %v to satisfy an Include of '%s'", got, tt.dst)
		})
	}
}

func TestUpdateCategories_Errors(t *testing.T) {
	tree := loadCategoriesMenu(t)
	graphics := data.NewPath("Graphics")
	missing := data.NewPath("Missing")

	tests := []struct {
		name     string
		src      *data.VirtualPath
		dst      data.VirtualPath
		expected error
	}{
		{"missing destination", nil, data.NewPath("Nowhere"), data.ErrNotFound},
		{"missing source", &missing, data.NewPath("Office"), data.ErrNotFound},
		{"no include rules", nil, data.NewPath("Rules"), data.ErrUnsatisfiable},
		{"source conflicts with destination", &graphics, data.NewPath("Graphics", "Viewers"), data.ErrUnsatisfiable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := updateCategories(tree, data.CategorySet{"Graphics"}, tt.src, tt.dst); !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func mustFindMenu(t *testing.T, tree *menu.Tree, path data.VirtualPath) menu.NodeID {
	t.Helper()

	node, ok := tree.FindMenu(path.Segments())
	if !ok {
		t.Fatalf("Menu '%s' not found", path)
	}
	return node
}
