package menu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mwantia/menufs/data"
	errs "github.com/mwantia/menufs/data/errors"
)

const applicationsMenu = `<!DOCTYPE Menu PUBLIC "-//freedesktop//DTD Menu 1.0//EN"
 "http://www.freedesktop.org/standards/menu-spec/menu-1.0.dtd">
<Menu>
  <Name>Applications</Name>
  <Directory>Applications.directory</Directory>
  <Menu>
    <Name>Utility</Name>
    <Include>
      <And>
        <Category>Utility</Category>
        <Not><Category>System</Category></Not>
      </And>
    </Include>
    <Exclude>
      <Filename>org.example.Hidden.desktop</Filename>
    </Exclude>
  </Menu>
  <Menu>
    <Name>Internet</Name>
    <Include>
      <Category>Network</Category>
    </Include>
  </Menu>
  <Layout>
    <Merge type="menus"/>
  </Layout>
</Menu>
`

func TestParse_Structure(t *testing.T) {
	tree, err := Parse("applications.menu", []byte(applicationsMenu))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	root := tree.Root()
	if tree.Tag(root) != TagMenu || tree.MenuName(root) != "Applications" {
		t.Fatalf("Unexpected root %s '%s'", tree.Tag(root), tree.MenuName(root))
	}
	if got := len(tree.Submenus(root)); got != 2 {
		t.Fatalf("Expected 2 submenus, got %d", got)
	}

	utility, ok := tree.FindMenu([]string{"Utility"})
	if !ok {
		t.Fatal("FindMenu failed for 'Utility'")
	}
	if got := len(tree.Rules(utility, TagInclude)); got != 1 {
		t.Errorf("Expected 1 Include, got %d", got)
	}
	if got := len(tree.Rules(utility, TagExclude)); got != 1 {
		t.Errorf("Expected 1 Exclude, got %d", got)
	}

	if _, ok := tree.FindMenu([]string{"Utility", "Missing"}); ok {
		t.Error("Expected FindMenu to fail for a missing menu")
	}
}

func TestParse_UnknownElementsAreInert(t *testing.T) {
	tree, err := Parse("applications.menu", []byte(applicationsMenu))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	unknown := 0
	tree.Walk(tree.Root(), func(id NodeID) bool {
		if tree.Tag(id) == TagUnknown {
			unknown++
		}
		return true
	})
	// Directory, Layout, Merge
	if unknown != 3 {
		t.Errorf("Expected 3 inert elements, got %d", unknown)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"malformed":          `<Menu><Name>A</Name>`,
		"no-root":            ``,
		"root-not-menu":      `<Include><Category>A</Category></Include>`,
		"missing-name":       `<Menu><Include/></Menu>`,
		"two-names":          `<Menu><Name>A</Name><Name>B</Name></Menu>`,
		"empty-name":         `<Menu><Name>  </Name></Menu>`,
		"not-empty":          `<Menu><Name>A</Name><Include><Not/></Include></Menu>`,
		"not-two-children":   `<Menu><Name>A</Name><Include><Not><Category>A</Category><Category>B</Category></Not></Include></Menu>`,
		"not-filename":       `<Menu><Name>A</Name><Include><Not><Filename>a.desktop</Filename></Not></Include></Menu>`,
		"mergefile-element":  `<Menu><Name>A</Name><MergeFile><Name>B</Name></MergeFile></Menu>`,
		"mergedir-empty":     `<Menu><Name>A</Name><MergeDir></MergeDir></Menu>`,
		"nested-menu-noname": `<Menu><Name>A</Name><Menu><Include/></Menu></Menu>`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("test.menu", []byte(content))
			if err == nil {
				t.Fatal("Expected parse error")
			}
			if !errors.Is(err, data.ErrParse) {
				t.Errorf("Expected ErrParse, got %v", err)
			}
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	content := "<Menu>\n  <Name></Name>\n</Menu>\n"

	_, err := Parse("position.menu", []byte(content))

	var parseErr *errs.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if parseErr.File != "position.menu" || parseErr.Line != 2 || parseErr.Column != 3 {
		t.Errorf("Unexpected position %s:%d:%d", parseErr.File, parseErr.Line, parseErr.Column)
	}
}

func TestParse_SyntaxErrorPosition(t *testing.T) {
	content := "<Menu>\n  <Include><Category>A</Include>\n</Menu>\n"

	_, err := Parse("syntax.menu", []byte(content))

	var parseErr *errs.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if parseErr.Line != 2 || parseErr.Column < 1 {
		t.Errorf("Unexpected position %s:%d:%d", parseErr.File, parseErr.Line, parseErr.Column)
	}
}

func TestParse_IndentedNesting(t *testing.T) {
	var content strings.Builder
	var path []string
	for depth := range 12 {
		indent := strings.Repeat("  ", depth)
		name := fmt.Sprintf("Level%d", depth)
		fmt.Fprintf(&content, "%s<Menu>\n%s  <Name>\n%s    %s\n%s  </Name>\n", indent, indent, indent, name, indent)
		if depth > 0 {
			path = append(path, name)
		}
	}
	for depth := 11; depth >= 0; depth-- {
		fmt.Fprintf(&content, "%s</Menu>\n", strings.Repeat("  ", depth))
	}

	tree, err := Parse("deep.menu", []byte(content.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if name := tree.MenuName(tree.Root()); name != "Level0" {
		t.Errorf("Expected root 'Level0', got '%s'", name)
	}
	if _, ok := tree.FindMenu(path); !ok {
		t.Errorf("FindMenu failed for %v", path)
	}
}

func TestParse_MergesSameNamedMenus(t *testing.T) {
	content := `<Menu><Name>Applications</Name>
  <Menu><Name>Games</Name><Include><Category>Game</Category></Include></Menu>
  <Menu><Name>Office</Name></Menu>
  <Menu><Name>Games</Name><Exclude><Category>Card</Category></Exclude></Menu>
</Menu>`

	tree, err := Parse("test.menu", []byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	submenus := tree.Submenus(tree.Root())
	if len(submenus) != 2 {
		t.Fatalf("Expected 2 submenus after merge, got %d", len(submenus))
	}
	if tree.MenuName(submenus[0]) != "Games" || tree.MenuName(submenus[1]) != "Office" {
		t.Errorf("Unexpected submenu order '%s', '%s'", tree.MenuName(submenus[0]), tree.MenuName(submenus[1]))
	}

	games := submenus[0]
	if got := len(tree.ChildrenOf(games, TagName)); got != 1 {
		t.Errorf("Expected exactly one Name after merge, got %d", got)
	}
	if len(tree.Rules(games, TagInclude)) != 1 || len(tree.Rules(games, TagExclude)) != 1 {
		t.Error("Expected merged menu to carry both Include and Exclude")
	}
}
