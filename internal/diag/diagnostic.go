package diag

import (
	"jqplay/internal/source"
)

// Diagnostic is a structured, optionally positioned description of a
// failed evaluation. Span offsets point into the script text that
// produced the error and are stale as soon as that text changes.
type Diagnostic struct {
	Kind       Kind
	Message    string
	RawMessage string
	Span       *source.Span
}

// Positioned reports whether the diagnostic carries an inline span.
func (d Diagnostic) Positioned() bool {
	return d.Span != nil
}

func spanPtr(start, end, textLen int) *source.Span {
	sp := source.NewSpan(start, end).Clamp(textLen)
	return &sp
}
