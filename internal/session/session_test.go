package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jqplay/internal/assistant"
	"jqplay/internal/interp"
)

type fakeSynth struct {
	responses []string
	prompts   []string
	err       error
	block     chan struct{}
}

func (f *fakeSynth) Synthesize(_ context.Context, prompt string) (string, error) {
	if f.block != nil {
		<-f.block
	}
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

type fakeEval struct {
	// stderr per script; scripts not listed evaluate successfully.
	fail map[string]string
}

func (f *fakeEval) Eval(_ context.Context, script string, _ []byte) ([]byte, error) {
	if msg, ok := f.fail[script]; ok {
		return nil, &interp.EvalError{Stderr: msg}
	}
	return []byte(`{"ok":true}`), nil
}

func testTask() Task {
	return Task{
		Input:   []byte(`{"items":[{"price":1}]}`),
		Desired: []byte(`[1]`),
	}
}

func TestGenerateResolvesOnValidScript(t *testing.T) {
	synth := &fakeSynth{responses: []string{"```jq\nmap(.price)\n```"}}
	s := New(testTask(), synth, &fakeEval{})

	att, err := s.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !att.Valid || att.Script != "map(.price)" {
		t.Fatalf("unexpected attempt %+v", att)
	}
	if s.State() != StateResolved {
		t.Fatalf("expected resolved, got %s", s.State())
	}
}

func TestContinueReplaysFullTrailAndResolves(t *testing.T) {
	badErr := "jq: error: syntax error, unexpected '}', expecting $end\n" +
		"... at <top-level>, line 1:\n" +
		"{price: .price,}\n" +
		"jq: 1 compile error"
	synth := &fakeSynth{responses: []string{"{price: .price,}", ".items | map(.price)"}}
	ev := &fakeEval{fail: map[string]string{"{price: .price,}": badErr}}
	s := New(testTask(), synth, ev)

	first, err := s.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first.Valid || s.State() != StateAwaitingDecision {
		t.Fatalf("expected invalid attempt awaiting decision, got %+v in %s", first, s.State())
	}
	if !strings.Contains(first.ErrorMessage, "syntax error, unexpected '}'") {
		t.Fatalf("expected cleaned error message, got %q", first.ErrorMessage)
	}

	second, err := s.Generate(context.Background())
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	prompt := synth.prompts[1]
	if !strings.Contains(prompt, "{price: .price,}") {
		t.Fatalf("continuation prompt misses the prior script:\n%s", prompt)
	}
	if !strings.Contains(prompt, first.ErrorMessage) {
		t.Fatalf("continuation prompt misses the prior error:\n%s", prompt)
	}
	if !second.Valid || s.State() != StateResolved {
		t.Fatalf("expected resolution, got %+v in %s", second, s.State())
	}
	if got := len(s.Attempts()); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestGenerateWhileGeneratingIsRejected(t *testing.T) {
	synth := &fakeSynth{responses: []string{".x"}, block: make(chan struct{})}
	s := New(testTask(), synth, &fakeEval{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := s.Generate(context.Background()); err != nil {
			t.Errorf("first Generate: %v", err)
		}
	}()

	for s.State() != StateGenerating {
		time.Sleep(time.Millisecond)
	}
	if _, err := s.Generate(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if len(s.Attempts()) != 0 {
		t.Fatal("rejected request must not mutate attempts")
	}
	close(synth.block)
	<-done
}

func TestTransportFailureRecordsNoAttempt(t *testing.T) {
	transportErr := &assistant.TransportError{Err: errors.New("dial tcp: timeout")}
	synth := &fakeSynth{err: transportErr}
	s := New(testTask(), synth, &fakeEval{})

	_, err := s.Generate(context.Background())
	var te *assistant.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if len(s.Attempts()) != 0 {
		t.Fatal("transport failure must not append an attempt")
	}
	if s.State() != StateIdle {
		t.Fatalf("expected rollback to idle, got %s", s.State())
	}
}

func TestBreakOnlyFromAwaitingDecision(t *testing.T) {
	s := New(testTask(), &fakeSynth{}, &fakeEval{})
	if err := s.Break(); !errors.Is(err, ErrNotAwaiting) {
		t.Fatalf("expected ErrNotAwaiting from idle, got %v", err)
	}

	synth := &fakeSynth{responses: []string{"nope"}}
	ev := &fakeEval{fail: map[string]string{"nope": "jq: error: nope/0 is not defined"}}
	s = New(testTask(), synth, ev)
	if _, err := s.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := s.Break(); err != nil {
		t.Fatalf("Break: %v", err)
	}
	if s.State() != StateBroken {
		t.Fatalf("expected broken, got %s", s.State())
	}
	if _, err := s.Generate(context.Background()); !errors.Is(err, ErrSettled) {
		t.Fatalf("expected ErrSettled after break, got %v", err)
	}
	if got := len(s.Attempts()); got != 1 {
		t.Fatalf("attempt trail must survive break, got %d", got)
	}
}
