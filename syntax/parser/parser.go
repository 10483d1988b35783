package parser

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/siadat/tagnote/syntax/ast"
	"github.com/siadat/tagnote/syntax/scanner"
	"github.com/siadat/tagnote/syntax/token"
)

type Parser struct {
	scanner *scanner.Scanner
	current *ast.TagNode
	stack   []*ast.TagNode

	debug bool
}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) SetDebug(v bool) {
	p.debug = v
	if p.scanner != nil {
		p.scanner.SetDebug(v)
	}
}

// Parse is a shortcut for NewParser().ParseString(src).
func Parse(src string) (*ast.TagNode, error) {
	return NewParser().ParseString(src)
}

func (p *Parser) Parse(src io.Reader) (*ast.TagNode, error) {
	var byts, err = io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return p.ParseString(string(byts))
}

// ParseString returns the root of src. Any error is a *scanner.Error and no
// partial tree is returned with it.
func (p *Parser) ParseString(src string) (*ast.TagNode, error) {
	var runes = []rune(src)
	for i, r := range runes {
		if r == 0 {
			return nil, scanner.NewError(scanner.InvalidArgument, i, "NUL character is not allowed")
		}
	}

	p.scanner = scanner.NewScanner(runes)
	p.scanner.SetDebug(p.debug)
	p.current = ast.NewRoot()
	p.stack = nil

	for {
		var t, err = p.scanner.NextToken()
		if err != nil {
			return nil, err
		}
		if t.Typ == token.EOF {
			break
		}
		if err := p.apply(t); err != nil {
			return nil, err
		}
	}

	if len(p.stack) > 0 {
		return nil, scanner.NewError(scanner.UnterminatedTag, p.current.Pos, "%q is never closed", p.current.Marker)
	}
	if p.debug {
		fmt.Fprintf(os.Stderr, "[debug] parsed %d runes into %d top-level groups\n", len(runes), len(p.current.Groups))
	}
	return p.current, nil
}

func (p *Parser) apply(t scanner.Token) error {
	switch t.Typ {
	case token.TEXT, token.ESCAPED, token.QUOTED:
		p.current.AddChild(ast.TextNode{Text: t.Lit})
	case token.BACKTICK:
		// separator only
	case token.PIPE:
		p.current.StartNewGroup()
	case token.MARKER:
		var marker = firstRune(t.Lit)
		if token.IsToggle(marker) && marker == p.current.Marker {
			p.closeTag()
			return nil
		}
		p.openTag(marker, t.Pos)
	case token.MARKER_GROUP:
		p.openTag(firstRune(t.Lit), t.Pos)
		p.current.StartNewGroup()
	case token.CLOSE:
		var closer = firstRune(t.Lit)
		if p.current.IsRoot() || token.GetRight(p.current.Marker) != closer {
			return scanner.NewError(scanner.UnexpectedCloseTag, t.Pos, "%q has no matching %q", closer, token.GetLeft(closer))
		}
		p.closeTag()
	default:
		return scanner.NewError(scanner.UnexpectedCharacter, t.Pos, "unexpected token %s", t)
	}
	return nil
}

func (p *Parser) openTag(marker rune, pos int) {
	p.stack = append(p.stack, p.current)
	p.current = ast.NewTagNode(marker, pos)
}

func (p *Parser) closeTag() {
	var previous = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	previous.AddChild(p.current)
	p.current = previous
}

func firstRune(s string) rune {
	var r, _ = utf8.DecodeRuneInString(s)
	return r
}
