package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/siadat/tagnote/syntax/ast"
	"github.com/siadat/tagnote/syntax/parser"
	"github.com/urfave/cli/v2"
)

func run(args ...string) (string, string, error) {
	var app = newApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(*cli.Context, error) {}
	var err = app.Run(append([]string{"tagnote", "--no-color"}, args...))
	return out.String(), errOut.String(), err
}

func TestCommands(tt *testing.T) {
	var testCases = []struct {
		args []string
		want string
	}{
		{
			args: []string{"fmt", "-i", "~`a~"},
			want: "~a~",
		},
		{
			args: []string{"fmt", "--newline", "-i", "[`]]`]"},
			want: "[]]]\n",
		},
		{
			args: []string{"fmt", "--check", "-i", "~a~"},
			want: "",
		},
		{
			args: []string{"fmt", "--diff", "-i", "x\n~`a~"},
			want: " x\n-~`a~\n+~a~\n",
		},
		{
			args: []string{"export", "--format", "json", "-i", "~a~"},
			want: `{
  "name": "root",
  "children": [
    {
      "name": "tilde",
      "children": [
        {
          "name": "text",
          "text": "a"
        }
      ]
    }
  ]
}
`,
		},
		{
			args: []string{"parse", "--format", "xml", "-i", "~a~"},
			want: `<root>
  <tilde>
    <text>a</text>
  </tilde>
</root>
`,
		},
	}

	for _, tc := range testCases {
		var got, _, err = run(tc.args...)
		if err != nil {
			tt.Fatalf("case failed args=%q: %v", tc.args, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			tt.Fatalf("case failed args=%q (-want +got):\n%s", tc.args, diff)
		}
	}
}

func TestCommandErrors(tt *testing.T) {
	var testCases = []struct {
		args       []string
		wantErr    string
		wantStderr string
		wantExit   int
	}{
		{
			args:     []string{"fmt", "--check", "-i", "~`a~"},
			wantErr:  "input is not formatted",
			wantExit: 1,
		},
		{
			args:       []string{"fmt", "-i", "[abc"},
			wantStderr: "[abc\n^ unterminated tag at character 1: '[' is never closed\n",
			wantExit:   1,
		},
		{
			args:       []string{"parse", "-i", "a\n\tb]"},
			wantStderr: "\tb]\n\t ^ unexpected close tag at character 5: ']' has no matching '['\n",
			wantExit:   1,
		},
		{
			args:    []string{"export", "--format", "toml", "-i", "a"},
			wantErr: `unsupported format "toml"`,
		},
	}

	for _, tc := range testCases {
		var _, stderr, err = run(tc.args...)
		if err == nil {
			tt.Fatalf("case failed args=%q: expected an error", tc.args)
		}
		if tc.wantErr != "" {
			if diff := cmp.Diff(tc.wantErr, err.Error()); diff != "" {
				tt.Fatalf("case failed args=%q (-want +got):\n%s", tc.args, diff)
			}
		}
		if diff := cmp.Diff(tc.wantStderr, stderr); diff != "" {
			tt.Fatalf("case failed args=%q (-want +got):\n%s", tc.args, diff)
		}
		var exitCode = 0
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if diff := cmp.Diff(tc.wantExit, exitCode); diff != "" {
			tt.Fatalf("case failed args=%q (-want +got):\n%s", tc.args, diff)
		}
	}
}

func TestImport(tt *testing.T) {
	var testCases = []struct {
		tree    string
		want    string
		wantErr string
	}{
		{
			tree: `name: root
children:
  - name: star
    children:
      - name: text
        text: x
`,
			want: "*x*\n",
		},
		{
			tree: `name: tilde
children:
  - name: tilde
    children:
      - name: alternative
      - name: alternative
        children:
          - name: text
            text: a
`,
			want: "~`~|a~`~\n",
		},
		{
			tree: `name: root
children:
  - name: tilde
    children:
      - name: tilde
        children:
          - name: text
            text: a
`,
			wantErr: "tilde directly inside tilde must start with an empty alternative",
		},
		{
			tree: `name: bracket
children:
  - name: text
    text: a
  - name: text
  - name: text
    text: b
`,
			wantErr: "text node is empty",
		},
	}

	for i, tc := range testCases {
		var path = filepath.Join(tt.TempDir(), "tree.yaml")
		if err := os.WriteFile(path, []byte(tc.tree), 0o644); err != nil {
			tt.Fatalf("failed to write tree: %v", err)
		}

		var got, _, err = run("import", "-f", path)
		if tc.wantErr != "" {
			if err == nil || err.Error() != tc.wantErr {
				tt.Fatalf("case %d: expected error %q, got: %v", i, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			tt.Fatalf("case %d failed: %v", i, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			tt.Fatalf("case %d failed (-want +got):\n%s", i, diff)
		}
	}
}

func TestWriteTreeUnsupportedFormat(tt *testing.T) {
	var root = ast.NewRoot()
	root.AddChild(ast.TextNode{Text: "a"})

	var buf bytes.Buffer
	var err = writeTree(&buf, root, "toml")
	if err == nil || err.Error() != `unsupported format "toml"` {
		tt.Fatalf("expected unsupported format error, got: %v", err)
	}
	if buf.Len() != 0 {
		tt.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestReportParseError(tt *testing.T) {
	var backup = color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = backup }()

	var src = "~a"
	var _, parseErr = parser.Parse(src)

	var buf bytes.Buffer
	var err = reportParseError(&buf, src, parseErr)
	var exitErr cli.ExitCoder
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		tt.Fatalf("expected exit code 1, got: %v", err)
	}
	if diff := cmp.Diff("~a\n^ unterminated tag at character 1: '~' is never closed\n", buf.String()); diff != "" {
		tt.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	var other = errors.New("read failed")
	buf.Reset()
	if got := reportParseError(&buf, src, other); got != other {
		tt.Fatalf("expected the error to pass through, got: %v", got)
	}
	if buf.Len() != 0 {
		tt.Fatalf("expected no output, got %q", buf.String())
	}
}
