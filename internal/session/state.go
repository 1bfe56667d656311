package session

// State is the retry session's position in its lifecycle.
// Idle -> Generating -> {Resolved | AwaitingDecision};
// AwaitingDecision -> Generating (continue) or Broken (terminal).
type State uint8

const (
	StateIdle State = iota
	StateGenerating
	StateAwaitingDecision
	StateResolved
	StateBroken
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateAwaitingDecision:
		return "awaiting-decision"
	case StateResolved:
		return "resolved"
	case StateBroken:
		return "broken"
	}
	return "invalid"
}

// Settled reports whether the session reached a terminal state.
func (s State) Settled() bool {
	return s == StateResolved || s == StateBroken
}
