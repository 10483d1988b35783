package token

import (
	"strconv"
)

type Token int

const (
	ILLEGAL Token = iota
	EOF

	TEXT    // abc
	ESCAPED // ~~
	QUOTED  // "a""b"

	MARKER       // [ < { ~ * ...
	MARKER_GROUP // ~|
	CLOSE        // ] > }
	PIPE         // |
	BACKTICK     // `
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	TEXT:    "TEXT",
	ESCAPED: "ESCAPED",
	QUOTED:  "QUOTED",

	MARKER:       "MARKER",
	MARKER_GROUP: "MARKER_GROUP",
	CLOSE:        "CLOSE",
	PIPE:         "PIPE",
	BACKTICK:     "BACKTICK",
}

func (tok Token) String() string {
	var s = ""
	if 0 <= tok && tok < Token(len(tokens)) {
		s = tokens[tok]
	}
	if s == "" {
		s = "token(" + strconv.Itoa(int(tok)) + ")"
	}
	return s
}
