package fumt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/siadat/tagnote/erroring"
	"github.com/siadat/tagnote/syntax/ast"
	"github.com/siadat/tagnote/syntax/parser"
)

// The formater rewrites a source into the form the printer produces for its
// tree. Formatting a formatted source returns it unchanged.

type formater struct {
	parser *parser.Parser
	debug  bool
}

func NewFormater() *formater {
	return &formater{}
}

func (ft *formater) SetDebug(v bool) {
	ft.debug = v
}

func (ft *formater) Format(src io.Reader, out io.Writer) error {
	var byts, readErr = io.ReadAll(src)
	if readErr != nil {
		return readErr
	}
	var s, err = ft.FormatString(string(byts))
	if err != nil {
		return err
	}
	var _, writeErr = io.WriteString(out, s)
	return writeErr
}

func (ft *formater) FormatString(src string) (string, error) {
	ft.parser = parser.NewParser()
	ft.parser.SetDebug(ft.debug)
	var root, parseErr = ft.parser.ParseString(src)
	if parseErr != nil {
		return "", parseErr
	}
	return FormatTree(root)
}

// FormatTree stringifies a tree that may not have come from the parser, in
// which case it can hold a tag the printer refuses.
func FormatTree(root *ast.TagNode) (s string, retErr error) {
	defer func() {
		var r = recover()
		switch r := r.(type) {
		case nil:
			return
		case ast.PrintError:
			retErr = Error{r}
		default:
			erroring.PrintTrace()
			retErr = Error{fmt.Errorf("unexpected error of type %T: %v", r, r)}
		}
		s = ""
	}()
	return ast.Stringify(root), nil
}

// Check reports whether src is already formatted.
func (ft *formater) Check(src string) (bool, error) {
	var s, err = ft.FormatString(src)
	if err != nil {
		return false, err
	}
	return s == src, nil
}

// Diff returns a line diff from src to its formatted form, or "" if src is
// already formatted.
func (ft *formater) Diff(src string) (string, error) {
	var formatted, err = ft.FormatString(src)
	if err != nil {
		return "", err
	}
	if formatted == src {
		return "", nil
	}

	var dmp = diffmatchpatch.New()
	var a, b, lines = dmp.DiffLinesToChars(src, formatted)
	var diffs = dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			prefix = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				buf.WriteString("\n")
			}
		}
	}
	if ft.debug {
		fmt.Fprintf(os.Stderr, "[debug] %d diff chunks\n", len(diffs))
	}
	return buf.String(), nil
}

type Error struct {
	err error
}

func (i Error) Error() string {
	return i.err.Error()
}

func (i Error) Unwrap() error {
	return i.err
}
