package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/siadat/tagnote/syntax/parser"
)

func TestMarkError(tt *testing.T) {
	var testCases = []struct {
		src  string
		want []string
	}{
		{
			src: "abc [def",
			want: []string{
				"abc [def",
				"    ^ unterminated tag at character 5: '[' is never closed",
			},
		},
		{
			src: "first\n\tsecond ]",
			want: []string{
				"\tsecond ]",
				"\t       ^ unexpected close tag at character 15: ']' has no matching '['",
			},
		},
		{
			src: `say "hi`,
			want: []string{
				`say "hi`,
				`    ^ unterminated quote at character 5: no closing '"'`,
			},
		},
	}

	for _, tc := range testCases {
		var _, err = parser.Parse(tc.src)
		if err == nil {
			tt.Fatalf("expected an error for src=%q", tc.src)
		}
		var got = parser.MarkError(tc.src, err)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			tt.Fatalf("case failed src=%q (-want +got):\n%s", tc.src, diff)
		}
	}
}

func TestMarkErrorForeignError(tt *testing.T) {
	var got = parser.MarkError("abc", errors.New("boom"))
	if diff := cmp.Diff([]string{"boom"}, got); diff != "" {
		tt.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
