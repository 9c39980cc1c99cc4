package menu

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	errs "github.com/mwantia/menufs/data/errors"
)

// Parse reads a single menu document into a fresh tree and validates it.
// Merge directives are left in place; use a Loader to resolve them.
func Parse(file string, content []byte) (*Tree, error) {
	t := newTree()

	root, err := t.parse(file, content)
	if err != nil {
		return nil, err
	}

	t.root = root
	t.mergeMenus(root)

	return t, nil
}

// parse decodes content into generic nodes appended to the arena and
// returns the validated document element.
func (t *Tree) parse(file string, content []byte) (NodeID, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))
	decoder.Strict = true

	root := NoNode
	var stack []NodeID
	var text []*strings.Builder

	for {
		line, column := decoder.InputPos()

		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntax *xml.SyntaxError
			if errors.As(err, &syntax) {
				_, errColumn := decoder.InputPos()
				return NoNode, errs.Parse(file, syntax.Line, errColumn, "%s", syntax.Msg)
			}
			return NoNode, errs.Parse(file, line, column, "%v", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != NoNode {
				return NoNode, errs.Parse(file, line, column, "unexpected second root element <%s>", tok.Name.Local)
			}

			id := t.add(Node{
				Element: tok.Name.Local,
				Attrs:   tok.Copy().Attr,
				File:    file,
				Line:    line,
				Column:  column,
			})
			if len(stack) == 0 {
				root = id
			} else {
				parent := stack[len(stack)-1]
				t.nodes[parent].Children = append(t.nodes[parent].Children, id)
			}
			stack = append(stack, id)
			text = append(text, &strings.Builder{})

		case xml.CharData:
			if len(stack) > 0 {
				text[len(text)-1].Write(tok)
			}

		case xml.EndElement:
			id := stack[len(stack)-1]
			t.nodes[id].Text = strings.TrimSpace(text[len(text)-1].String())
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if root == NoNode {
		return NoNode, errs.Parse(file, 1, 1, "document has no root element")
	}
	if t.nodes[root].Element != "Menu" {
		node := t.nodes[root]
		return NoNode, errs.Parse(file, node.Line, node.Column, "root element must be <Menu>, found <%s>", node.Element)
	}

	if err := t.validate(root); err != nil {
		return NoNode, err
	}

	return root, nil
}

// validate classifies the known elements below id and enforces their
// structure. Unknown elements are not descended into.
func (t *Tree) validate(id NodeID) error {
	node := &t.nodes[id]
	node.Tag = tagOf(node.Element)

	fail := func(format string, args ...any) error {
		return errs.Parse(node.File, node.Line, node.Column, format, args...)
	}

	switch node.Tag {
	case TagUnknown:
		return nil

	case TagName, TagCategory, TagFilename, TagMergeFile, TagMergeDir:
		if len(node.Children) > 0 {
			return fail("<%s> must contain only text", node.Element)
		}
		if node.Text == "" {
			return fail("<%s> must not be empty", node.Element)
		}
		return nil

	case TagDefaultMergeDirs:
		return nil

	case TagNot:
		if len(node.Children) != 1 {
			return fail("<Not> must contain exactly one element, found %d", len(node.Children))
		}
		child := tagOf(t.nodes[node.Children[0]].Element)
		switch child {
		case TagAnd, TagOr, TagNot, TagCategory:
		default:
			return fail("<Not> must contain <And>, <Or>, <Not> or <Category>, found <%s>", t.nodes[node.Children[0]].Element)
		}

	case TagMenu:
		names := 0
		for _, child := range node.Children {
			if tagOf(t.nodes[child].Element) == TagName {
				names++
			}
		}
		if names != 1 {
			return fail("<Menu> must contain exactly one <Name>, found %d", names)
		}
	}

	for _, child := range t.nodes[id].Children {
		if err := t.validate(child); err != nil {
			return err
		}
	}

	return nil
}
