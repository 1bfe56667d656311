package complete

import (
	"strings"
	"testing"

	"jqplay/internal/jsonpath"
)

var testPaths = []jsonpath.Path{
	{Path: "name", Selector: ".name", Kind: jsonpath.KindPrimitive, Sample: `"store"`},
	{Path: "items", Selector: ".items", Kind: jsonpath.KindArray},
	{Path: "items[].price", Selector: ".items[].price", Kind: jsonpath.KindPrimitive, Sample: "9.5"},
	{Path: "items[].price", Selector: ".items[].price", Kind: jsonpath.KindPrimitive, Sample: "9.5"},
}

func labels(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Label
	}
	return out
}

func indexOf(cands []Candidate, label string) int {
	for i, c := range cands {
		if c.Label == label {
			return i
		}
	}
	return -1
}

func TestRankNoDuplicateLabels(t *testing.T) {
	got := Rank("", LineContext{}, testPaths, Catalog())
	seen := map[string]bool{}
	for _, l := range labels(got) {
		if seen[l] {
			t.Fatalf("duplicate label %q", l)
		}
		seen[l] = true
	}
}

func TestRankSortedAscendingBySortKey(t *testing.T) {
	got := Rank("", AnalyzeContext(".items | "), testPaths, Catalog())
	for i := 1; i < len(got); i++ {
		if got[i-1].SortKey > got[i].SortKey {
			t.Fatalf("output not sorted at %d: %q > %q", i, got[i-1].SortKey, got[i].SortKey)
		}
	}
	for i, c := range got {
		for _, d := range got[i+1:] {
			if c.Kind == CandidatePattern && d.Kind == CandidatePattern && c.Score > d.Score {
				t.Fatalf("higher penalty %q before lower penalty %q", c.Label, d.Label)
			}
		}
	}
}

func TestRankFieldsPrecedePatterns(t *testing.T) {
	got := Rank("", LineContext{}, testPaths, Catalog())
	sawPattern := false
	for _, c := range got {
		if c.Kind == CandidatePattern {
			sawPattern = true
		} else if sawPattern {
			t.Fatalf("field %q after a pattern", c.Label)
		}
	}
	if !sawPattern {
		t.Fatal("expected pattern candidates in the output")
	}
}

func TestRankPartialFiltersFields(t *testing.T) {
	got := Rank("price", LineContext{}, testPaths, Catalog())
	if idx := indexOf(got, "items[].price"); idx == -1 {
		t.Fatalf("expected price field in %v", labels(got))
	}
	if idx := indexOf(got, "name"); idx != -1 {
		t.Fatalf("name must not match partial \"price\": %v", labels(got))
	}
}

func TestRankSelectContextScenario(t *testing.T) {
	ctx := AnalyzeContext("select(")
	if !ctx.AfterSelect || ctx.AfterPipe || ctx.AfterDot {
		t.Fatalf("unexpected context %+v", ctx)
	}
	got := Rank("", ctx, nil, Catalog())
	filter := indexOf(got, "Filter by condition")
	sortBy := indexOf(got, "Sort array")
	if filter == -1 || sortBy == -1 {
		t.Fatalf("catalog entries missing from %v", labels(got))
	}
	if filter > sortBy {
		t.Fatalf("Filter by condition (%d) must rank above Sort array (%d)", filter, sortBy)
	}
}

func TestRankPipeBoostsFilterByCondition(t *testing.T) {
	got := Rank("", AnalyzeContext(".items | "), nil, Catalog())
	if got[0].Label != "Filter by condition" {
		t.Fatalf("expected Filter by condition first after a pipe, got %q", got[0].Label)
	}
}

func TestRankEmptyMatchFallsBackToCatalog(t *testing.T) {
	got := Rank("zzzzzz", LineContext{}, testPaths, Catalog())
	if len(got) != len(Catalog()) {
		t.Fatalf("expected full catalog fallback, got %d of %d", len(got), len(Catalog()))
	}
}

func TestRankScoreNeverNegative(t *testing.T) {
	ctx := LineContext{
		AfterDot: true, AfterPipe: true, AfterSelect: true, AfterMap: true,
		AfterSortBy: true, AfterGroupBy: true, InCondition: true, AfterComparison: true,
	}
	for _, c := range Rank("", ctx, nil, Catalog()) {
		if c.Score < 0 {
			t.Fatalf("negative score for %q: %d", c.Label, c.Score)
		}
	}
}

func TestRankDuplicatePathsDeduplicated(t *testing.T) {
	got := Rank("price", LineContext{}, testPaths, nil)
	count := 0
	for _, l := range labels(got) {
		if strings.Contains(l, "price") {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one price candidate, got %d", count)
	}
}
