package ast

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/siadat/tagnote/syntax/token"
)

// PrintError is raised (as a panic) when a tree holds a marker the reader
// would not accept. Trees built by the parser never do.
type PrintError struct {
	Marker rune
	Reason string
}

func (e PrintError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot print tag with marker %q: %s", e.Marker, e.Reason)
	}
	return fmt.Sprintf("cannot print tag with marker %q", e.Marker)
}

// Stringify returns source that parses back into a tree equal to root, node
// for node. The result is not necessarily the text root was parsed from.
func Stringify(root *TagNode) string {
	var p printer
	p.tag(root)
	return p.buf.String()
}

func (t *TagNode) String() string {
	return Stringify(t)
}

func (t TextNode) String() string {
	var p printer
	p.text(t)
	return p.buf.String()
}

type piece int

const (
	pieceNone    piece = iota
	pieceRaw           // text without special runes
	pieceEscaped       // a doubled special rune, consumed as a pair
	pieceToken         // a structural rune read on its own: pipe, closer, closing quote
	pieceMarker        // a marker read on its own; a following pipe would join it
)

type printer struct {
	buf   strings.Builder
	last  rune
	prev  piece
	outer rune // marker of the enclosing tag
}

// emit writes s, preceded by a backtick if the reader would otherwise join
// s with what was written before.
func (p *printer) emit(s string, kind piece) {
	if s == "" {
		return
	}
	var first, _ = utf8.DecodeRuneInString(s)
	if p.needsSeparator(first, kind) {
		p.buf.WriteRune(token.Backtick)
	}
	p.buf.WriteString(s)
	p.last, _ = utf8.DecodeLastRuneInString(s)
	p.prev = kind
}

func (p *printer) needsSeparator(first rune, kind piece) bool {
	switch p.prev {
	case pieceNone, pieceEscaped:
		return false
	case pieceRaw:
		return kind == pieceRaw
	case pieceMarker:
		return first == p.last || first == token.Pipe
	default:
		return first == p.last
	}
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case *TagNode:
		p.tag(n)
	case TextNode:
		p.text(n)
	case *TextNode:
		p.text(*n)
	default:
		panic(fmt.Sprintf("unsupported node type %T", n))
	}
}

func (p *printer) tag(t *TagNode) {
	var root = t.IsRoot()
	var right = token.GetRight(t.Marker)
	if !root && right == 0 {
		panic(PrintError{Marker: t.Marker})
	}
	if !root && !t.CanNestIn(p.outer) {
		panic(PrintError{Marker: t.Marker, Reason: "nested in the same marker without an empty first group"})
	}
	var outer = p.outer
	p.outer = t.Marker
	defer func() { p.outer = outer }()

	var groups = t.Groups
	if len(groups) == 0 {
		groups = [][]Node{{}}
	}

	// An empty toggle tag comes out as ~`~ because ~~ is a literal ~.
	var start = 0
	if !root {
		if len(groups) > 1 && len(groups[0]) == 0 {
			// A marker followed by a pipe always opens, even when it equals
			// the enclosing marker.
			p.emit(string(t.Marker)+string(token.Pipe), pieceToken)
			start = 1
		} else {
			p.emit(string(t.Marker), pieceMarker)
		}
	}

	for i := start; i < len(groups); i++ {
		if i > start {
			p.emit(string(token.Pipe), pieceToken)
		}
		for _, n := range groups[i] {
			p.node(n)
		}
	}

	if root {
		return
	}
	if token.IsToggle(t.Marker) {
		p.emit(string(right), pieceMarker)
	} else {
		p.emit(string(right), pieceToken)
	}
}

func (p *printer) text(t TextNode) {
	var s = t.Text
	var runes = []rune(s)
	switch {
	case s == "":
		return
	case token.IndexSpecial(runes, 0) < 0:
		p.emit(s, pieceRaw)
	case len(runes) == 1:
		p.emit(s+s, pieceEscaped)
	case runes[0] != token.Quote:
		p.emit(Quote(s), pieceToken)
	default:
		// A leading quote cannot open a quoted literal, it would read as "".
		var escaped = Escape(s)
		var last, _ = utf8.DecodeLastRuneInString(s)
		if token.IsSpecial(last) {
			p.emit(escaped, pieceEscaped)
		} else {
			p.emit(escaped, pieceRaw)
		}
	}
}

// Escape doubles every special rune in s.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if token.IsSpecial(r) {
			b.WriteRune(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Quote wraps s in double quotes, doubling the quotes inside it.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
