package scanner

import "fmt"

type ErrorKind int

const (
	InvalidArgument ErrorKind = iota + 1
	UnterminatedQuote
	UnexpectedCloseTag
	UnexpectedCharacter
	UnterminatedTag
)

func (k ErrorKind) String() string {
	var s, ok = map[ErrorKind]string{
		InvalidArgument:     "invalid argument",
		UnterminatedQuote:   "unterminated quote",
		UnexpectedCloseTag:  "unexpected close tag",
		UnexpectedCharacter: "unexpected character",
		UnterminatedTag:     "unterminated tag",
	}[k]
	if !ok {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return s
}

// Error is a fatal parse failure. Index is the 1-based rune index into the
// original input.
type Error struct {
	Kind  ErrorKind
	Index int
	Msg   string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s at character %d", e.Kind, e.Index)
	}
	return fmt.Sprintf("%s at character %d: %s", e.Kind, e.Index, e.Msg)
}

// NewError takes a 0-based offset and stores it 1-based.
func NewError(kind ErrorKind, offset int, f string, args ...any) *Error {
	return &Error{
		Kind:  kind,
		Index: offset + 1,
		Msg:   fmt.Sprintf(f, args...),
	}
}
