package ast

import (
	"github.com/siadat/tagnote/syntax/token"
)

type Node interface {
	node()
	String() string
}

// TextNode is a literal run of text.
type TextNode struct {
	Text string
}

// TagNode is either the document root (Marker == token.RootMarker) or a tag
// opened by a marker rune. Groups is never empty; groups are separated by a
// pipe in the source.
type TagNode struct {
	Marker rune
	Pos    int // 0-based rune offset of the opening marker
	Groups [][]Node
}

func (TextNode) node() {}
func (*TagNode) node() {}

func NewTagNode(marker rune, pos int) *TagNode {
	return &TagNode{
		Marker: marker,
		Pos:    pos,
		Groups: [][]Node{{}},
	}
}

func NewRoot() *TagNode {
	return NewTagNode(token.RootMarker, 0)
}

func (t *TagNode) IsRoot() bool {
	return t.Marker == token.RootMarker
}

// AddChild appends n to the last group.
func (t *TagNode) AddChild(n Node) {
	if len(t.Groups) == 0 {
		t.Groups = [][]Node{{}}
	}
	var last = len(t.Groups) - 1
	t.Groups[last] = append(t.Groups[last], n)
}

func (t *TagNode) StartNewGroup() {
	t.Groups = append(t.Groups, []Node{})
}

func (t *TagNode) LastGroup() []Node {
	if len(t.Groups) == 0 {
		return nil
	}
	return t.Groups[len(t.Groups)-1]
}

// IsEmpty reports whether t has a single group with nothing in it.
func (t *TagNode) IsEmpty() bool {
	return len(t.Groups) <= 1 && len(t.LastGroup()) == 0
}

// CanNestIn reports whether t reads back as a direct child of a tag with
// marker outer. A toggle opens inside the same toggle only as marker plus
// pipe, which leaves its first group empty.
func (t *TagNode) CanNestIn(outer rune) bool {
	if !token.IsToggle(t.Marker) || t.Marker != outer {
		return true
	}
	return len(t.Groups) > 1 && len(t.Groups[0]) == 0
}
