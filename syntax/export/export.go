package export

import (
	"errors"
	"fmt"

	"github.com/siadat/tagnote/syntax/ast"
	"github.com/siadat/tagnote/syntax/token"
)

const (
	RootName        = "root"
	AlternativeName = "alternative"
	TextName        = "text"
)

var markerNames = map[rune]string{
	'[': "bracket",
	'<': "angle",
	'{': "brace",
	'~': "tilde",
	'*': "star",
	'_': "underscore",
	'^': "caret",
	'#': "hash",
	'%': "percent",
	'+': "plus",
	'=': "equals",
	'@': "at",
	'$': "dollar",
	'!': "bang",
	'&': "ampersand",
}

var nameMarkers = func() map[string]rune {
	var m = make(map[string]rune, len(markerNames))
	for r, name := range markerNames {
		m[name] = r
	}
	return m
}()

var ErrUnmappableMarker = errors.New("unmappable marker")

// Error reports a marker, or a name on the way back, that has no entry in the
// marker table.
type Error struct {
	Marker rune
	Name   string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: no marker is named %q", ErrUnmappableMarker, e.Name)
	}
	return fmt.Sprintf("%s: %q", ErrUnmappableMarker, e.Marker)
}

func (e *Error) Unwrap() error {
	return ErrUnmappableMarker
}

// Tree is a generic labeled tree. Text leaves are named TextName and carry
// Text; every other node only has Children.
type Tree struct {
	Name     string  `yaml:"name" json:"name"`
	Text     string  `yaml:"text,omitempty" json:"text,omitempty"`
	Children []*Tree `yaml:"children,omitempty" json:"children,omitempty"`
}

func MarkerName(marker rune) (string, error) {
	if marker == token.RootMarker {
		return RootName, nil
	}
	var name, ok = markerNames[marker]
	if !ok {
		return "", &Error{Marker: marker}
	}
	return name, nil
}

// ToGenericTree maps a parsed tree to a Tree. A tag with a single group gets
// the group's nodes as children; a tag with several groups gets one
// AlternativeName child per group.
func ToGenericTree(n ast.Node) (*Tree, error) {
	switch n := n.(type) {
	case ast.TextNode:
		return &Tree{Name: TextName, Text: n.Text}, nil
	case *ast.TextNode:
		return &Tree{Name: TextName, Text: n.Text}, nil
	case *ast.TagNode:
		var name, err = MarkerName(n.Marker)
		if err != nil {
			return nil, err
		}
		var tree = &Tree{Name: name}
		if len(n.Groups) <= 1 {
			var children, err = convertGroup(n.LastGroup())
			if err != nil {
				return nil, err
			}
			tree.Children = children
			return tree, nil
		}
		for _, group := range n.Groups {
			var children, err = convertGroup(group)
			if err != nil {
				return nil, err
			}
			tree.Children = append(tree.Children, &Tree{Name: AlternativeName, Children: children})
		}
		return tree, nil
	default:
		panic(fmt.Sprintf("unsupported node type %T", n))
	}
}

func convertGroup(group []ast.Node) ([]*Tree, error) {
	var children []*Tree
	for _, item := range group {
		var child, err = ToGenericTree(item)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// FromGenericTree is the inverse of ToGenericTree. Source positions are lost
// on the way out, so every TagNode it returns has Pos 0.
func FromGenericTree(t *Tree) (ast.Node, error) {
	return fromTree(t, token.RootMarker, true)
}

// fromTree rejects what the printer could not write back as the same tree.
func fromTree(t *Tree, outer rune, top bool) (ast.Node, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tree")
	}
	switch t.Name {
	case TextName:
		if len(t.Children) > 0 {
			return nil, fmt.Errorf("%s node has %d children", TextName, len(t.Children))
		}
		if t.Text == "" {
			return nil, fmt.Errorf("%s node is empty", TextName)
		}
		return ast.TextNode{Text: t.Text}, nil
	case AlternativeName:
		return nil, fmt.Errorf("%s outside of a tag", AlternativeName)
	}

	var marker rune
	if t.Name == RootName {
		if !top {
			return nil, fmt.Errorf("%s is only allowed at the top", RootName)
		}
		marker = token.RootMarker
	} else {
		var r, ok = nameMarkers[t.Name]
		if !ok {
			return nil, &Error{Name: t.Name}
		}
		marker = r
	}

	var tag = ast.NewTagNode(marker, 0)
	if !hasAlternatives(t) {
		for _, child := range t.Children {
			var n, err = fromTree(child, marker, false)
			if err != nil {
				return nil, err
			}
			tag.AddChild(n)
		}
		return checkNesting(tag, t.Name, outer)
	}

	for i, alt := range t.Children {
		if alt == nil || alt.Name != AlternativeName {
			return nil, fmt.Errorf("%s mixes %s and other children", t.Name, AlternativeName)
		}
		if i > 0 {
			tag.StartNewGroup()
		}
		for _, child := range alt.Children {
			var n, err = fromTree(child, marker, false)
			if err != nil {
				return nil, err
			}
			tag.AddChild(n)
		}
	}
	return checkNesting(tag, t.Name, outer)
}

func checkNesting(tag *ast.TagNode, name string, outer rune) (ast.Node, error) {
	if !tag.CanNestIn(outer) {
		return nil, fmt.Errorf("%s directly inside %s must start with an empty %s", name, name, AlternativeName)
	}
	return tag, nil
}

func hasAlternatives(t *Tree) bool {
	for _, child := range t.Children {
		if child != nil && child.Name == AlternativeName {
			return true
		}
	}
	return false
}

// ToRoot is FromGenericTree for callers that need something to stringify: a
// tree that is not a root is wrapped in one.
func ToRoot(t *Tree) (*ast.TagNode, error) {
	var n, err = FromGenericTree(t)
	if err != nil {
		return nil, err
	}
	if tag, ok := n.(*ast.TagNode); ok && tag.IsRoot() {
		return tag, nil
	}
	var root = ast.NewRoot()
	root.AddChild(n)
	return root, nil
}
