package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/mattn/go-isatty"
	"github.com/siadat/tagnote/fumt"
	"github.com/siadat/tagnote/syntax/ast"
	"github.com/siadat/tagnote/syntax/export"
	"github.com/siadat/tagnote/syntax/parser"
	"github.com/siadat/tagnote/syntax/scanner"
	"github.com/urfave/cli/v2"
)

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "input string, or - to read stdin",
		Required: true,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tagnote",
		Usage: "parse, format and export tag notation",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug mode",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "never color error markers",
			},
		},
		Before: func(cmdCtx *cli.Context) error {
			color.NoColor = cmdCtx.Bool("no-color") || !isatty.IsTerminal(os.Stderr.Fd())
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "parse",
				Usage: "print the tree of the input",
				Flags: []cli.Flag{
					inputFlag(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "go, yaml, json or xml",
						Value: "go",
					},
				},
				Action: func(cmdCtx *cli.Context) error {
					var input, root, err = parseInput(cmdCtx)
					if err != nil {
						return reportParseError(cmdCtx.App.ErrWriter, input, err)
					}
					if cmdCtx.String("format") == "go" {
						fmt.Fprintf(cmdCtx.App.Writer, "%# v\n", pretty.Formatter(root))
						return nil
					}
					return writeTree(cmdCtx.App.Writer, root, cmdCtx.String("format"))
				},
			},
			{
				Name:  "fmt",
				Usage: "rewrite the input in canonical form",
				Flags: []cli.Flag{
					inputFlag(),
					&cli.BoolFlag{
						Name:  "diff",
						Usage: "print a diff instead of the formatted input",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "fail if the input is not formatted",
					},
					&cli.BoolFlag{
						Name:  "newline",
						Usage: "add newline after output",
					},
				},
				Action: func(cmdCtx *cli.Context) error {
					var input, err = readInput(cmdCtx)
					if err != nil {
						return err
					}
					var formater = fumt.NewFormater()
					formater.SetDebug(cmdCtx.Bool("debug"))

					switch {
					case cmdCtx.Bool("check"):
						var ok, checkErr = formater.Check(input)
						if checkErr != nil {
							return reportParseError(cmdCtx.App.ErrWriter, input, checkErr)
						}
						if !ok {
							return cli.Exit("input is not formatted", 1)
						}
						return nil
					case cmdCtx.Bool("diff"):
						var diff, diffErr = formater.Diff(input)
						if diffErr != nil {
							return reportParseError(cmdCtx.App.ErrWriter, input, diffErr)
						}
						fmt.Fprint(cmdCtx.App.Writer, diff)
						return nil
					default:
						var s, formatErr = formater.FormatString(input)
						if formatErr != nil {
							return reportParseError(cmdCtx.App.ErrWriter, input, formatErr)
						}
						fmt.Fprint(cmdCtx.App.Writer, s)
						if cmdCtx.Bool("newline") {
							fmt.Fprintln(cmdCtx.App.Writer)
						}
						return nil
					}
				},
			},
			{
				Name:  "export",
				Usage: "export the tree of the input as a generic tree",
				Flags: []cli.Flag{
					inputFlag(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "yaml, json or xml",
						Value: "yaml",
					},
				},
				Action: func(cmdCtx *cli.Context) error {
					var input, root, err = parseInput(cmdCtx)
					if err != nil {
						return reportParseError(cmdCtx.App.ErrWriter, input, err)
					}
					return writeTree(cmdCtx.App.Writer, root, cmdCtx.String("format"))
				},
			},
			{
				Name:  "import",
				Usage: "turn an exported generic tree back into source",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "path to the exported tree, or - to read stdin",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "yaml or json",
						Value: "yaml",
					},
				},
				Action: func(cmdCtx *cli.Context) error {
					var r io.Reader = os.Stdin
					if path := cmdCtx.String("file"); path != "-" {
						var f, openErr = os.Open(path)
						if openErr != nil {
							return openErr
						}
						defer f.Close()
						r = f
					}

					var tree *export.Tree
					var err error
					switch cmdCtx.String("format") {
					case "yaml":
						tree, err = export.DecodeYAML(r)
					case "json":
						tree, err = export.DecodeJSON(r)
					default:
						return fmt.Errorf("unsupported format %q", cmdCtx.String("format"))
					}
					if err != nil {
						return fmt.Errorf("failed to decode tree: %w", err)
					}

					var root, convertErr = export.ToRoot(tree)
					if convertErr != nil {
						return convertErr
					}
					var s, formatErr = fumt.FormatTree(root)
					if formatErr != nil {
						return formatErr
					}
					fmt.Fprintln(cmdCtx.App.Writer, s)
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "command failed: %s\n", err)
		os.Exit(1)
	}
}

func readInput(cmdCtx *cli.Context) (string, error) {
	var input = cmdCtx.String("input")
	if input == "-" {
		var byts, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		input = string(byts)
	}
	if cmdCtx.Bool("debug") {
		fmt.Fprintf(os.Stderr, "[debug] input: %q\n", input)
	}
	return input, nil
}

func parseInput(cmdCtx *cli.Context) (string, *ast.TagNode, error) {
	var input, err = readInput(cmdCtx)
	if err != nil {
		return "", nil, err
	}
	var p = parser.NewParser()
	p.SetDebug(cmdCtx.Bool("debug"))
	var root, parseErr = p.ParseString(input)
	return input, root, parseErr
}

func writeTree(w io.Writer, root *ast.TagNode, format string) error {
	var tree, err = export.ToGenericTree(root)
	if err != nil {
		return err
	}
	switch format {
	case "yaml":
		return export.EncodeYAML(w, tree)
	case "json":
		return export.EncodeJSON(w, tree)
	case "xml":
		return export.EncodeXML(w, tree)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// reportParseError points at the offending rune when err came from the
// parser, and passes other errors through.
func reportParseError(w io.Writer, src string, err error) error {
	var perr *scanner.Error
	if !errors.As(err, &perr) {
		return err
	}
	var lines = parser.MarkError(src, err)
	var mark = color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintln(w, lines[0])
	fmt.Fprintln(w, mark(strings.Join(lines[1:], "\n")))
	return cli.Exit("", 1)
}
