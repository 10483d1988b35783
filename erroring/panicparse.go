package erroring

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/maruel/panicparse/v2/stack"
)

const modulePath = "github.com/siadat/tagnote"

// Output is where PrintTrace writes.
var Output io.Writer = os.Stderr

// PrintTrace uses panicparse to print a readable panic stack, keeping only
// the frames after the panic that belong to this module.
// See https://pkg.go.dev/github.com/maruel/panicparse/v2/stack
func PrintTrace() {
	var stream = bytes.NewReader(debug.Stack())

	var s, suffix, err = stack.ScanSnapshot(stream, Output, stack.DefaultOpts())
	if err != nil && err != io.EOF {
		fmt.Fprintf(Output, "failed to parse stack: %v\n", err)
		return
	}
	if s == nil {
		return
	}

	var buckets = s.Aggregate(stack.AnyValue).Buckets

	var colLen = 0
	for _, bucket := range buckets {
		for _, line := range filterCalls(bucket.Signature.Stack.Calls) {
			if l := len(formatFilename(line)); l > colLen {
				colLen = l
			}
		}
	}

	for _, bucket := range buckets {
		var extra = ""
		if s := bucket.SleepString(); s != "" {
			extra += " [" + s + "]"
		}
		if bucket.Locked {
			extra += " [locked]"
		}
		fmt.Fprintf(Output, "%d: %s%s\n", len(bucket.IDs), bucket.State, extra)

		for _, line := range filterCalls(bucket.Signature.Stack.Calls) {
			fmt.Fprintln(Output, formatCall(line, colLen))
		}
		if bucket.Stack.Elided {
			io.WriteString(Output, "    (...) (elided)\n")
		}
	}

	if len(suffix) != 0 {
		Output.Write(suffix)
	}
	if err == nil {
		io.Copy(Output, stream)
	}
}

func filterCalls(lines []stack.Call) []stack.Call {
	var ret []stack.Call
	var sawStdlibPanic = false
	for _, line := range lines {
		if !sawStdlibPanic {
			if line.Func.DirName == "" && line.SrcName == "panic.go" {
				sawStdlibPanic = true
			}
			continue
		}

		if line.Func.IsPkgMain || strings.HasPrefix(line.ImportPath, modulePath) {
			ret = append(ret, line)
		}
	}
	return ret
}

func formatCall(line stack.Call, colLen int) string {
	return fmt.Sprintf("    %-*s %s(...)", colLen, formatFilename(line), line.Func.Name)
}

func formatFilename(line stack.Call) string {
	return fmt.Sprintf("%s/%s:%d", line.Func.DirName, line.SrcName, line.Line)
}
