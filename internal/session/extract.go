package session

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*\n?(.*?)```")

// ExtractScript digs the script out of the assistant's raw response:
// code fences (with or without a language tag), single-backtick
// wrapping, a leading explanatory line and wrapping quotes are all
// stripped. Extraction is idempotent; an already-bare script passes
// through unchanged.
func ExtractScript(raw string) string {
	s := strings.TrimSpace(raw)

	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	} else if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		// "Here is the script:" style lead-in before the real content.
		if first := strings.TrimSpace(s[:idx]); strings.HasSuffix(first, ":") {
			s = strings.TrimSpace(s[idx+1:])
		}
	}

	s = trimWrap(s, '`')
	s = trimWrap(s, '"')
	s = trimWrap(s, '\'')
	return strings.TrimSpace(s)
}

func trimWrap(s string, quote byte) string {
	if len(s) >= 2 && s[0] == quote && s[len(s)-1] == quote {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
