package diag

import (
	"strings"
	"testing"
)

func TestPrettyUnderlinesSpan(t *testing.T) {
	script := "{foo: .bar,}"
	d := Classify(
		"jq: error: syntax error, unexpected '}', expecting $end\n"+
			"... at <top-level>, line 1:\n"+
			"{foo: .bar,}\n"+
			"jq: 1 compile error",
		script,
	)

	var b strings.Builder
	Pretty(&b, d, script, PrettyOpts{})
	out := b.String()
	if !strings.Contains(out, "error[syntax]:") {
		t.Fatalf("missing header in %q", out)
	}
	if !strings.Contains(out, script) {
		t.Fatalf("missing source line in %q", out)
	}
	if !strings.Contains(out, "^~~~~~~~~~~") {
		t.Fatalf("missing underline in %q", out)
	}
}

func TestPrettyWithoutSpan(t *testing.T) {
	var b strings.Builder
	Pretty(&b, Diagnostic{Kind: KindUnknown, Message: "boom"}, ".foo", PrettyOpts{})
	out := b.String()
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected a single header line, got %q", out)
	}
}

func TestPrettyCaretOnLaterLine(t *testing.T) {
	script := ".a\n| nope"
	sp := spanPtr(5, 9, len(script))
	var b strings.Builder
	Pretty(&b, Diagnostic{Kind: KindType, Message: "m", Span: sp}, script, PrettyOpts{})
	if !strings.Contains(b.String(), "  2 | ") {
		t.Fatalf("expected line 2 gutter, got %q", b.String())
	}
}
