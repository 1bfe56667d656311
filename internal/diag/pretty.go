package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
}

var (
	errHeadColor = color.New(color.FgRed, color.Bold)
	caretColor   = color.New(color.FgRed)
	gutterColor  = color.New(color.FgCyan)
	envHeadColor = color.New(color.FgYellow, color.Bold)
)

func sprintfOf(c *color.Color, on bool) func(format string, a ...interface{}) string {
	if on {
		return c.Sprintf
	}
	return fmt.Sprintf
}

// Pretty renders a diagnostic against the script that produced it:
// a "error[kind]: message" header, then the offending line with a
// ^~~~ underline when the diagnostic carries a span.
func Pretty(w io.Writer, d Diagnostic, script string, opts PrettyOpts) {
	head := sprintfOf(errHeadColor, opts.Color)
	if d.Kind == KindEnvironment {
		head = sprintfOf(envHeadColor, opts.Color)
	}
	fmt.Fprintf(w, "%s %s\n", head("error[%s]:", d.Kind), firstLine(d.Message))

	if d.Span == nil || script == "" {
		return
	}
	sp := d.Span.Clamp(len(script))
	lineStart, lineEnd, lineNo := lineBounds(script, int(sp.Start))
	line := script[lineStart:lineEnd]

	gutter := sprintfOf(gutterColor, opts.Color)
	caret := sprintfOf(caretColor, opts.Color)

	prefix := gutter("%3d | ", lineNo)
	fmt.Fprintf(w, "%s%s\n", prefix, line)

	col := int(sp.Start) - lineStart
	width := int(sp.End) - int(sp.Start)
	if int(sp.End) > lineEnd {
		width = lineEnd - int(sp.Start)
	}
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "%s%s%s\n", gutter("    | "), strings.Repeat(" ", col), caret("%s", underline))
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// lineBounds locates the line containing byte offset pos and returns its
// [start, end) bounds plus the 1-based line number.
func lineBounds(text string, pos int) (start, end, lineNo int) {
	if pos > len(text) {
		pos = len(text)
	}
	lineNo = 1 + strings.Count(text[:pos], "\n")
	start = strings.LastIndexByte(text[:pos], '\n') + 1
	end = len(text)
	if idx := strings.IndexByte(text[start:], '\n'); idx >= 0 {
		end = start + idx
	}
	return start, end, lineNo
}
