package parser

import (
	"errors"
	"strings"

	"github.com/siadat/tagnote/syntax/scanner"
)

// MarkAt returns the source line holding the 1-based rune index and a second
// line with a caret under that rune, followed by msg.
func MarkAt(src string, index int, msg string) []string {
	var runes = []rune(src)
	var offset = index - 1
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	var line, column = scanner.LineColumn(runes, offset)
	var lines = strings.Split(src, "\n")

	// keep tabs so the caret lines up in a terminal
	var pad strings.Builder
	for i, r := range []rune(lines[line]) {
		if i >= column {
			break
		}
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
	}
	for i := len([]rune(lines[line])); i < column; i++ {
		pad.WriteRune(' ')
	}

	var marker = pad.String() + "^"
	if msg != "" {
		marker += " " + msg
	}
	return []string{lines[line], marker}
}

// MarkError is MarkAt for errors returned by Parse. Other errors are returned
// as a single line.
func MarkError(src string, err error) []string {
	var perr *scanner.Error
	if !errors.As(err, &perr) {
		return []string{err.Error()}
	}
	return MarkAt(src, perr.Index, perr.Error())
}
