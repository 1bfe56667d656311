package diag

import (
	"regexp"
	"strings"

	"jqplay/internal/source"
)

// The classifier is a heuristic layer over jq's free-form stderr. It only
// adds positioning on top of the interpreter's own verdict; anything it
// cannot place confidently degrades to KindUnknown with no span.

const envMessage = "jq interpreter not available"

var (
	topLevelMarkerRe = regexp.MustCompile(`(?m)^(?:\.\.\. )?at <top-level>, line \d+:$`)
	inlineMarkerRe   = regexp.MustCompile(` at <top-level>, line \d+:?`)
	markerBlockRe    = regexp.MustCompile(`(?s)\s*(?:\.\.\. )?at <top-level>, line \d+:.*$`)
	compileTrailerRe = regexp.MustCompile(`(?m)^jq: \d+ compile errors?\s*$`)
	whileParsingRe   = regexp.MustCompile(`\s*\(while parsing [^)]*\)`)
	unterminatedRe   = regexp.MustCompile(`[Pp]ossibly unterminated '(\w+)' statement`)
	quotedLiteralRe  = regexp.MustCompile(`"([^"]+)"`)
)

var environmentMarkers = []string{
	"executable file not found",
	"no such file or directory",
	"cannot run",
	"is not recognized as an internal or external command",
	"fork/exec",
	"spawn",
}

var typeMarkers = []string{
	"cannot be",
	"cannot index",
	"cannot iterate over",
	"has no keys",
	"is not defined",
}

// Classify turns the interpreter's raw error text into a Diagnostic.
// It never fails; unrecognized shapes come back as KindUnknown.
func Classify(rawErrorText, scriptText string) Diagnostic {
	d := Diagnostic{Kind: KindUnknown, RawMessage: rawErrorText}

	lower := strings.ToLower(rawErrorText)
	for _, marker := range environmentMarkers {
		if strings.Contains(lower, marker) {
			d.Kind = KindEnvironment
			d.Message = envMessage
			return d
		}
	}

	if strings.Contains(lower, "syntax error") || unterminatedRe.MatchString(rawErrorText) {
		d.Kind = KindSyntax
		d.Message = cleanMessage(rawErrorText)
		d.Span = syntaxSpan(rawErrorText, scriptText)
		return d
	}

	for _, marker := range typeMarkers {
		if strings.Contains(lower, marker) {
			d.Kind = KindType
			d.Message = cleanMessage(rawErrorText)
			d.Span = typeSpan(rawErrorText, scriptText)
			return d
		}
	}

	d.Message = cleanMessage(rawErrorText)
	return d
}

// errorExpr extracts the erroring sub-expression jq quotes back between
// the "at <top-level>, line N:" marker and the next jq-prefixed line.
// Empty result means the marker block was absent.
func errorExpr(raw string) string {
	loc := topLevelMarkerRe.FindStringIndex(raw)
	if loc == nil {
		loc = inlineMarkerRe.FindStringIndex(raw)
	}
	if loc == nil {
		return ""
	}
	rest := raw[loc[1]:]
	rest = strings.TrimPrefix(rest, "\n")
	if idx := strings.Index(rest, "\njq:"); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimRight(rest, "\n")
}

func syntaxSpan(raw, script string) *source.Span {
	expr := errorExpr(raw)
	if expr == "" {
		return nil
	}
	n := len(expr)
	if strings.Contains(raw, "unexpected end of input") {
		// Caret at the end of the expression.
		return spanPtr(n, n+1, n)
	}
	if m := unterminatedRe.FindStringSubmatch(raw); m != nil {
		if idx := strings.Index(expr, m[1]); idx >= 0 {
			return spanPtr(idx, n, len(script))
		}
	}
	return spanPtr(0, n, len(script))
}

func typeSpan(raw, script string) *source.Span {
	if m := quotedLiteralRe.FindStringSubmatch(raw); m != nil {
		if idx := strings.Index(script, m[1]); idx >= 0 {
			return spanPtr(idx, idx+len(m[1]), len(script))
		}
	}
	// Whole-script fallback; type diagnostics are never unpositioned.
	return spanPtr(0, len(script), len(script))
}

// cleanMessage strips interpreter framing so the remaining text reads as
// a plain sentence: jq prefixes, the quoted marker block, compile-error
// trailers and "(while parsing ...)" asides.
func cleanMessage(raw string) string {
	msg := markerBlockRe.ReplaceAllString(raw, "")
	msg = compileTrailerRe.ReplaceAllString(msg, "")
	msg = whileParsingRe.ReplaceAllString(msg, "")

	lines := strings.Split(msg, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		for {
			trimmed := line
			for _, prefix := range []string{"jq:", "error:", "compile error:"} {
				trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
			}
			if trimmed == line {
				break
			}
			line = trimmed
		}
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
