package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) into a script's text.
type Span struct {
	Start uint32
	End   uint32
}

func NewSpan(start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		s = 0
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		e = s
	}
	if e < s {
		e = s
	}
	return Span{Start: s, End: e}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Clamp confines the span to a text of the given byte length.
func (s Span) Clamp(textLen int) Span {
	limit, err := safecast.Conv[uint32](textLen)
	if err != nil {
		return s
	}
	if s.Start > limit {
		s.Start = limit
	}
	if s.End > limit {
		s.End = limit
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	return s
}

// Slice returns the text covered by the span.
func (s Span) Slice(text string) string {
	sp := s.Clamp(len(text))
	return text[sp.Start:sp.End]
}
