package scanner

import (
	"fmt"
	"os"
	"strings"

	"github.com/siadat/tagnote/syntax/token"
)

// The scanner only knows about runes. Whether a MARKER opens or closes a tag
// depends on the open tags, which is a decision made by the parser.

type Scanner struct {
	src       []rune
	position  int
	currToken Token

	debug bool
}

type Token struct {
	Typ token.Token
	Lit string
	Pos int // 0-based rune offset
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Typ, t.Lit)
}

func NewScanner(src []rune) *Scanner {
	return &Scanner{
		src: src,
	}
}

func (s *Scanner) SetDebug(v bool) {
	s.debug = v
}

func (s *Scanner) Eof() bool {
	return s.currToken.Typ == token.EOF
}

func (s *Scanner) CurrToken() Token {
	return s.currToken
}

func (s *Scanner) peek(n int) rune {
	if s.position+n >= len(s.src) {
		return 0
	}
	return s.src[s.position+n]
}

func (s *Scanner) NextToken() (Token, error) {
	var t, err = s.nextToken()
	s.currToken = t
	if s.debug {
		s.PrintCursor("[debug]")
	}
	return t, err
}

func (s *Scanner) nextToken() (Token, error) {
	var pos = s.position
	if pos >= len(s.src) {
		return Token{token.EOF, "", pos}, nil
	}

	var ch = s.src[pos]
	if !token.IsSpecial(ch) {
		return s.readText(), nil
	}

	// Doubling wins over every other meaning of a special rune.
	if s.peek(1) == ch {
		s.position += 2
		return Token{token.ESCAPED, string(ch), pos}, nil
	}

	switch {
	case ch == token.Backtick:
		s.position++
		return Token{token.BACKTICK, string(ch), pos}, nil
	case ch == token.Quote:
		return s.readQuoted()
	case ch == token.Pipe:
		s.position++
		return Token{token.PIPE, string(ch), pos}, nil
	case token.IsCloser(ch):
		s.position++
		return Token{token.CLOSE, string(ch), pos}, nil
	case token.IsMarker(ch):
		if s.peek(1) == token.Pipe {
			s.position += 2
			return Token{token.MARKER_GROUP, string(ch), pos}, nil
		}
		s.position++
		return Token{token.MARKER, string(ch), pos}, nil
	default:
		s.position++
		return Token{token.ILLEGAL, string(ch), pos}, NewError(UnexpectedCharacter, pos, "%q", ch)
	}
}

func (s *Scanner) readText() Token {
	var position = s.position
	var end = token.IndexSpecial(s.src, position)
	if end < 0 {
		end = len(s.src)
	}
	s.position = end
	return Token{
		Typ: token.TEXT,
		Lit: string(s.src[position:end]),
		Pos: position,
	}
}

func (s *Scanner) readQuoted() (Token, error) {
	var position = s.position
	var i = position + 1
	for {
		var j = indexRune(s.src, token.Quote, i)
		if j < 0 {
			s.position = len(s.src)
			return Token{token.ILLEGAL, string(s.src[position:]), position},
				NewError(UnterminatedQuote, position, "no closing %q", token.Quote)
		}
		if j+1 < len(s.src) && s.src[j+1] == token.Quote {
			i = j + 2
			continue
		}
		s.position = j + 1
		var lit = strings.ReplaceAll(string(s.src[position+1:j]), `""`, `"`)
		return Token{token.QUOTED, lit, position}, nil
	}
}

func indexRune(src []rune, r rune, from int) int {
	for i := from; i < len(src); i++ {
		if src[i] == r {
			return i
		}
	}
	return -1
}

func (s *Scanner) PrintCursor(layout string, args ...interface{}) {
	var lines = strings.Split(string(s.src), "\n")
	var b strings.Builder
	var line, column = LineColumn(s.src, s.currToken.Pos)

	var prefix = fmt.Sprintf(layout, args...)
	fmt.Fprintf(&b, "%s  %s\n", prefix, lines[line])
	fmt.Fprintf(&b, "%s  %s▲ [%d] token=%s\n", prefix, strings.Repeat(" ", column), s.currToken.Pos, s.currToken)
	fmt.Fprint(os.Stderr, b.String())
}

// LineColumn returns the 0-based line and column of a 0-based rune offset.
func LineColumn(src []rune, offset int) (int, int) {
	var line = 0
	var column = 0
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line += 1
			column = 0
		} else {
			column += 1
		}
	}
	return line, column
}
