package diag

// Kind classifies why a script evaluation failed.
type Kind uint8

const (
	// KindUnknown is for failures the classifier could not place.
	KindUnknown Kind = iota
	// KindSyntax is for malformed scripts.
	KindSyntax
	// KindType is for well-formed scripts applied to incompatible operands.
	KindType
	KindEnvironment
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindType:
		return "type"
	case KindEnvironment:
		return "environment"
	case KindUnknown:
		return "unknown"
	}
	return "unknown"
}
