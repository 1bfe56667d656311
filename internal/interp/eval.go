package interp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Evaluator executes a script against one JSON input. A failed
// evaluation returns *EvalError; anything else is an invocation problem.
type Evaluator interface {
	Eval(ctx context.Context, script string, input []byte) ([]byte, error)
}

// EvalError carries the interpreter's raw stderr for classification.
type EvalError struct {
	Stderr string
}

func (e *EvalError) Error() string {
	return e.Stderr
}

// JQ runs scripts through an external jq binary. The binary's error text
// is treated as opaque; internal/diag does the interpretation.
type JQ struct {
	Path    string
	Args    []string
	Timeout time.Duration
}

const defaultTimeout = 10 * time.Second

func NewJQ(path string, args ...string) *JQ {
	if path == "" {
		path = "jq"
	}
	return &JQ{Path: path, Args: args, Timeout: defaultTimeout}
}

func (j *JQ) Eval(ctx context.Context, script string, input []byte) ([]byte, error) {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, j.Args...), script)
	cmd := exec.CommandContext(ctx, j.Path, args...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("interp: evaluation timed out: %w", ctx.Err())
		}
		if _, ok := err.(*exec.ExitError); ok {
			// jq ran and rejected the script; its stderr is the
			// diagnostic source of truth.
			return nil, &EvalError{Stderr: strings.TrimSpace(stderr.String())}
		}
		// Spawn failures keep the exec error text so the classifier
		// recognizes the environment indicators.
		return nil, &EvalError{Stderr: err.Error()}
	}
	return stdout.Bytes(), nil
}
