package menu

import (
	"encoding/xml"
	"slices"
)

// NodeID addresses a node inside its Tree. IDs stay valid for the lifetime
// of the tree; removed nodes are tombstoned, never reused.
type NodeID int

const NoNode NodeID = -1

// Node is one element of a parsed menu document.
type Node struct {
	Tag      Tag
	Element  string
	Text     string
	Attrs    []xml.Attr
	Children []NodeID

	File   string
	Line   int
	Column int

	removed bool
}

// Tree is the arena holding every node of one merged menu. It is built per
// operation and discarded afterwards.
type Tree struct {
	nodes []Node
	root  NodeID
}

func newTree() *Tree {
	return &Tree{root: NoNode}
}

func (t *Tree) add(node Node) NodeID {
	t.nodes = append(t.nodes, node)
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && !t.nodes[id].removed
}

// remove tombstones id. Its subtree becomes unreachable unless re-parented.
func (t *Tree) remove(id NodeID) {
	if id >= 0 && int(id) < len(t.nodes) {
		t.nodes[id].removed = true
	}
}

// Root returns the top-level Menu node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of live nodes reachable from the root.
func (t *Tree) Len() int {
	count := 0
	t.Walk(t.root, func(NodeID) bool {
		count++
		return true
	})

	return count
}

func (t *Tree) Tag(id NodeID) Tag {
	if !t.valid(id) {
		return TagUnknown
	}

	return t.nodes[id].Tag
}

func (t *Tree) Text(id NodeID) string {
	if !t.valid(id) {
		return ""
	}

	return t.nodes[id].Text
}

// Node returns a copy of the node.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.valid(id) {
		return Node{}, false
	}

	node := t.nodes[id]
	node.Children = slices.Clone(node.Children)

	return node, true
}

// Children returns the live children of id in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}

	children := make([]NodeID, 0, len(t.nodes[id].Children))
	for _, child := range t.nodes[id].Children {
		if t.valid(child) {
			children = append(children, child)
		}
	}

	return children
}

// ChildrenOf returns the live children of id carrying tag.
func (t *Tree) ChildrenOf(id NodeID, tag Tag) []NodeID {
	var matched []NodeID
	for _, child := range t.Children(id) {
		if t.nodes[child].Tag == tag {
			matched = append(matched, child)
		}
	}

	return matched
}

// Walk visits id and its descendants depth-first until fn returns false.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) bool {
	if !t.valid(id) {
		return true
	}
	if !fn(id) {
		return false
	}
	for _, child := range t.Children(id) {
		if !t.Walk(child, fn) {
			return false
		}
	}

	return true
}

// MenuName returns the text of the Name child of a Menu node.
func (t *Tree) MenuName(id NodeID) string {
	for _, child := range t.ChildrenOf(id, TagName) {
		return t.nodes[child].Text
	}

	return ""
}

// Submenus returns the Menu children of id.
func (t *Tree) Submenus(id NodeID) []NodeID {
	return t.ChildrenOf(id, TagMenu)
}

// FindMenu walks Menu children by Name from the root. An empty path is the root.
func (t *Tree) FindMenu(path []string) (NodeID, bool) {
	current := t.root
	if !t.valid(current) {
		return NoNode, false
	}

	for _, name := range path {
		next := NoNode
		for _, child := range t.Submenus(current) {
			if t.MenuName(child) == name {
				next = child
				break
			}
		}
		if next == NoNode {
			return NoNode, false
		}
		current = next
	}

	return current, true
}

// Rules returns the Include or Exclude elements of a Menu.
func (t *Tree) Rules(menu NodeID, tag Tag) []NodeID {
	return t.ChildrenOf(menu, tag)
}

// categories returns every Category text reachable below id.
func (t *Tree) categories(id NodeID) []string {
	var names []string
	t.Walk(id, func(node NodeID) bool {
		if t.nodes[node].Tag == TagCategory && !slices.Contains(names, t.nodes[node].Text) {
			names = append(names, t.nodes[node].Text)
		}
		// Nested menus own their own rules.
		return node == id || t.nodes[node].Tag != TagMenu
	})

	return names
}

// mergeMenus folds sibling Menus with equal names into the first occurrence,
// then recurses. The first menu keeps its Name and receives every other
// child of the later ones in order.
func (t *Tree) mergeMenus(id NodeID) {
	if !t.valid(id) {
		return
	}

	byName := make(map[string]NodeID)
	children := make([]NodeID, 0, len(t.nodes[id].Children))
	for _, child := range t.Children(id) {
		if t.nodes[child].Tag != TagMenu {
			children = append(children, child)
			continue
		}

		name := t.MenuName(child)
		first, exists := byName[name]
		if !exists {
			byName[name] = child
			children = append(children, child)
			continue
		}

		for _, grandchild := range t.Children(child) {
			if t.nodes[grandchild].Tag == TagName {
				t.remove(grandchild)
				continue
			}
			t.nodes[first].Children = append(t.nodes[first].Children, grandchild)
		}
		t.remove(child)
	}
	t.nodes[id].Children = children

	for _, child := range children {
		if t.nodes[child].Tag == TagMenu {
			t.mergeMenus(child)
		}
	}
}

func (t *Tree) firstChild(id NodeID) NodeID {
	children := t.Children(id)
	if len(children) == 0 {
		return NoNode
	}

	return children[0]
}

// element is a detached copy of a subtree.
type element struct {
	Tag      string
	Text     string
	Children []element
}

// export copies the live subtree below id, keeping raw element names.
func (t *Tree) export(id NodeID) element {
	if !t.valid(id) {
		return element{}
	}

	copied := element{
		Tag:  t.nodes[id].Element,
		Text: t.nodes[id].Text,
	}
	for _, child := range t.Children(id) {
		copied.Children = append(copied.Children, t.export(child))
	}

	return copied
}
