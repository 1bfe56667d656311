package complete

import "testing"

func TestAnalyzeContextFlags(t *testing.T) {
	cases := []struct {
		line string
		want LineContext
	}{
		{".", LineContext{AfterDot: true}},
		{".na", LineContext{AfterDot: true}},
		{".items.pri", LineContext{AfterDot: true, AfterFieldAccess: true}},
		{".items | ", LineContext{AfterPipe: true}},
		{".items |", LineContext{AfterPipe: true}},
		{"select(", LineContext{AfterSelect: true, InCondition: true}},
		{"map(", LineContext{AfterMap: true}},
		{"map(select(", LineContext{AfterSelect: true, AfterFilter: true, InCondition: true}},
		{"sort_by(", LineContext{AfterSortBy: true}},
		{"group_by(", LineContext{AfterGroupBy: true}},
		{"select(.price > ", LineContext{InCondition: true, AfterComparison: true}},
		{".price == ", LineContext{AfterComparison: true}},
		{".price != ", LineContext{AfterComparison: true}},
		{"select(.a) | ", LineContext{AfterPipe: true}},
		{"", LineContext{}},
	}
	for _, tc := range cases {
		got := AnalyzeContext(tc.line)
		if got != tc.want {
			t.Errorf("AnalyzeContext(%q) = %+v, want %+v", tc.line, got, tc.want)
		}
	}
}

func TestAfterDotNeverImpliesPipe(t *testing.T) {
	for _, line := range []string{".", ".a | .b.", "map(.x."} {
		ctx := AnalyzeContext(line)
		if !ctx.AfterDot {
			t.Errorf("AnalyzeContext(%q).AfterDot = false", line)
		}
		if ctx.AfterPipe {
			t.Errorf("AnalyzeContext(%q).AfterPipe = true", line)
		}
	}
}

func TestPartialWord(t *testing.T) {
	cases := map[string]string{
		".items.pri":      "pri",
		"map(sel":         "sel",
		".a | ":           "",
		"group_":          "group_",
		"select(.price >": "",
	}
	for line, want := range cases {
		if got := PartialWord(line); got != want {
			t.Errorf("PartialWord(%q) = %q, want %q", line, got, want)
		}
	}
}
