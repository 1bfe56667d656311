package complete

import (
	"regexp"
	"strings"
)

// LineContext records where on the current line the cursor sits. Flags
// are independent probes against the end of the text before the cursor
// and are not mutually exclusive.
type LineContext struct {
	AfterDot         bool
	AfterFieldAccess bool
	AfterPipe        bool
	AfterSelect      bool
	AfterMap         bool
	AfterFilter      bool
	AfterSortBy      bool
	AfterGroupBy     bool
	InCondition      bool
	AfterComparison  bool
}

var (
	afterDotRe         = regexp.MustCompile(`\.\w*$`)
	afterFieldAccessRe = regexp.MustCompile(`\.\w+\.\w*$`)
	afterSelectRe      = regexp.MustCompile(`select\(\s*$`)
	afterMapRe         = regexp.MustCompile(`map\(\s*$`)
	afterFilterRe      = regexp.MustCompile(`map\(select\(\s*$`)
	afterSortByRe      = regexp.MustCompile(`sort_by\(\s*$`)
	afterGroupByRe     = regexp.MustCompile(`group_by\(\s*$`)
	inConditionRe      = regexp.MustCompile(`(?:select|if|until|while)\s*\([^)]*$`)
	afterComparisonRe  = regexp.MustCompile(`(?:[<>]=?|[!=]=)\s*$`)
)

// AnalyzeContext classifies the text of the current line up to the
// cursor. Pure and deterministic; it never looks at other lines.
func AnalyzeContext(lineBeforeCursor string) LineContext {
	trimmed := strings.TrimRight(lineBeforeCursor, " \t")
	return LineContext{
		AfterDot:         afterDotRe.MatchString(lineBeforeCursor),
		AfterFieldAccess: afterFieldAccessRe.MatchString(lineBeforeCursor),
		AfterPipe:        strings.HasSuffix(trimmed, "|"),
		AfterSelect:      afterSelectRe.MatchString(lineBeforeCursor),
		AfterMap:         afterMapRe.MatchString(lineBeforeCursor) && !afterFilterRe.MatchString(lineBeforeCursor),
		AfterFilter:      afterFilterRe.MatchString(lineBeforeCursor),
		AfterSortBy:      afterSortByRe.MatchString(lineBeforeCursor),
		AfterGroupBy:     afterGroupByRe.MatchString(lineBeforeCursor),
		InCondition:      inConditionRe.MatchString(lineBeforeCursor),
		AfterComparison:  afterComparisonRe.MatchString(lineBeforeCursor),
	}
}

var partialWordRe = regexp.MustCompile(`[\w\]\[]+$`)

// PartialWord extracts the token being typed at the end of the line,
// used as the completion filter.
func PartialWord(lineBeforeCursor string) string {
	return partialWordRe.FindString(lineBeforeCursor)
}
