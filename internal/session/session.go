package session

import (
	"context"
	"errors"
	"sync"

	"jqplay/internal/assistant"
	"jqplay/internal/diag"
	"jqplay/internal/interp"
)

var (
	// ErrBusy rejects a generation request while one is in flight.
	ErrBusy = errors.New("session: generation already in flight")
	// ErrSettled rejects requests after Resolved or Broken.
	ErrSettled = errors.New("session: session already settled")
	// ErrNotAwaiting rejects Break outside AwaitingDecision.
	ErrNotAwaiting = errors.New("session: no decision pending")
)

// Task holds the fixed inputs of one synthesis session.
type Task struct {
	Input        []byte
	Desired      []byte
	Instructions string
}

// Attempt is one round of synthesis plus its validity outcome.
// Immutable once appended.
type Attempt struct {
	Index        int
	Script       string
	Valid        bool
	ErrorMessage string
	RawOutput    string
}

// Session drives multi-attempt script synthesis. One session per task;
// attempts are append-only and the full trail is replayed to the
// assistant on every continuation.
type Session struct {
	task  Task
	synth assistant.Synthesizer
	eval  interp.Evaluator

	mu       sync.Mutex
	state    State
	attempts []Attempt
}

func New(task Task, synth assistant.Synthesizer, eval interp.Evaluator) *Session {
	return &Session{
		task:  task,
		synth: synth,
		eval:  eval,
		state: StateIdle,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attempts returns a copy of the attempt trail.
func (s *Session) Attempts() []Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// Generate runs one synthesis round: prompt the assistant, extract the
// script, evaluate it, append the attempt. Valid from Idle and from
// AwaitingDecision (the explicit Continue); while Generating it returns
// ErrBusy without touching the attempt trail.
//
// An assistant transport failure produces no attempt: the session rolls
// back to its prior state and the *assistant.TransportError is returned.
func (s *Session) Generate(ctx context.Context) (Attempt, error) {
	s.mu.Lock()
	switch s.state {
	case StateGenerating:
		s.mu.Unlock()
		return Attempt{}, ErrBusy
	case StateResolved, StateBroken:
		s.mu.Unlock()
		return Attempt{}, ErrSettled
	}
	prev := s.state
	s.state = StateGenerating
	trail := make([]Attempt, len(s.attempts))
	copy(trail, s.attempts)
	s.mu.Unlock()

	prompt := BuildPrompt(s.task, trail)
	raw, err := s.synth.Synthesize(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = prev
		return Attempt{}, err
	}

	att := Attempt{
		Index:     len(s.attempts) + 1,
		Script:    ExtractScript(raw),
		RawOutput: raw,
	}
	if _, evalErr := s.eval.Eval(ctx, att.Script, s.task.Input); evalErr == nil {
		att.Valid = true
		s.state = StateResolved
	} else {
		att.ErrorMessage = attemptError(evalErr, att.Script)
		s.state = StateAwaitingDecision
	}
	s.attempts = append(s.attempts, att)
	return att, nil
}

// Break stops the session without a further request; the attempt trail
// stays visible for inspection.
func (s *Session) Break() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingDecision {
		return ErrNotAwaiting
	}
	s.state = StateBroken
	return nil
}

func attemptError(evalErr error, script string) string {
	var ee *interp.EvalError
	if errors.As(evalErr, &ee) {
		return diag.Classify(ee.Stderr, script).Message
	}
	return evalErr.Error()
}
