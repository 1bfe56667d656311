package complete

import (
	"fmt"
	"sort"
	"strings"

	"jqplay/internal/jsonpath"
)

// CandidateKind separates the author's own fields from catalog snippets.
type CandidateKind uint8

const (
	CandidateField CandidateKind = iota
	CandidatePattern
)

func (k CandidateKind) String() string {
	if k == CandidateField {
		return "field"
	}
	return "pattern"
}

// Candidate is one completion suggestion. Score is a penalty: lower
// sorts first. Candidates are recomputed on every relevant edit.
type Candidate struct {
	Label       string
	InsertText  string
	Kind        CandidateKind
	Category    Category
	Description string
	Score       int
	SortKey     string
}

// Patterns start at this penalty; context deductions pull them up.
const patternBaseScore = 500

// Rank merges field and pattern candidates for the partial word under
// the given line context, ordered ascending by SortKey and deduplicated
// by label (first insertion wins, and fields are inserted first).
func Rank(partial string, ctx LineContext, paths []jsonpath.Path, patterns []Pattern) []Candidate {
	merged := make([]Candidate, 0, len(paths)+len(patterns))
	seen := make(map[string]struct{}, len(paths)+len(patterns))

	appendUnique := func(c Candidate) {
		if _, ok := seen[c.Label]; ok {
			return
		}
		seen[c.Label] = struct{}{}
		merged = append(merged, c)
	}

	needle := strings.ToLower(partial)
	for _, p := range paths {
		if needle != "" && !strings.Contains(strings.ToLower(p.Path), needle) {
			continue
		}
		appendUnique(fieldCandidate(p))
	}
	for i, p := range patterns {
		if needle != "" && !patternMatches(p, needle) {
			continue
		}
		appendUnique(patternCandidate(p, i, ctx))
	}

	// Never show the author an empty list: fall back to the full
	// catalog, still ranked by context.
	if len(merged) == 0 {
		for i, p := range patterns {
			appendUnique(patternCandidate(p, i, ctx))
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SortKey < merged[j].SortKey
	})
	return merged
}

func patternMatches(p Pattern, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Snippet), needle)
}

func fieldCandidate(p jsonpath.Path) Candidate {
	desc := p.Kind.String()
	if p.Sample != "" {
		desc += " " + p.Sample
	}
	return Candidate{
		Label:       p.Path,
		InsertText:  p.Selector,
		Kind:        CandidateField,
		Description: desc,
		// Fields are the author's own data and always outrank a
		// generic snippet that matches equally well.
		SortKey: fmt.Sprintf("0:%04d:%s", 0, p.Path),
	}
}

func patternCandidate(p Pattern, catalogIndex int, ctx LineContext) Candidate {
	score := scorePattern(p, ctx)
	return Candidate{
		Label:       p.Name,
		InsertText:  p.Snippet,
		Kind:        CandidatePattern,
		Category:    p.Category,
		Description: p.Description,
		Score:       score,
		SortKey:     fmt.Sprintf("1:%04d:%s:%03d", score, p.Category, catalogIndex),
	}
}

// scorePattern applies the contextual deduction table. Rules are
// independent and additive; the result never goes below zero.
func scorePattern(p Pattern, ctx LineContext) int {
	score := patternBaseScore
	if ctx.AfterDot && p.Category == CategoryBasic {
		score -= 250
	}
	if ctx.AfterPipe {
		switch p.Category {
		case CategoryFiltering:
			score -= 200
		case CategoryTransformation:
			score -= 150
		}
		if p.Name == "Filter by condition" {
			score -= 100
		}
	}
	if ctx.AfterSelect {
		switch p.Category {
		case CategoryComparison:
			score -= 200
		case CategoryBasic:
			score -= 150
		}
	}
	if ctx.InCondition {
		switch p.Category {
		case CategoryComparison:
			score -= 150
		case CategoryBasic:
			score -= 100
		}
	}
	if ctx.AfterMap || ctx.AfterFilter {
		switch p.Category {
		case CategoryTransformation:
			score -= 200
		case CategoryConstruction:
			score -= 150
		}
	}
	if ctx.AfterSortBy && p.Category == CategoryBasic {
		score -= 200
	}
	if ctx.AfterGroupBy && p.Category == CategoryBasic {
		score -= 200
	}
	if ctx.AfterComparison {
		switch p.Category {
		case CategoryValues:
			score -= 200
		case CategoryBasic:
			score -= 150
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}
