package assistant

import (
	"errors"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	cases := map[string]bool{
		"assistant request: 429 Too Many Requests": true,
		"assistant request: rate_limit_error":      true,
		"assistant request: 503 unavailable":       true,
		"context deadline exceeded":                true,
		"assistant request: 401 unauthorized":      false,
		"assistant request: invalid_request_error": false,
	}
	for msg, want := range cases {
		if got := isRetryable(errors.New(msg)); got != want {
			t.Errorf("isRetryable(%q) = %v, want %v", msg, got, want)
		}
	}
	if isRetryable(nil) {
		t.Error("nil error must not be retryable")
	}
}

func TestTransportErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &TransportError{Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("expected TransportError to unwrap its cause")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := New(DefaultConfig()); err == nil {
		t.Fatal("expected an error without an API key")
	}
	if _, err := New(&Config{APIKey: "test-key"}); err != nil {
		t.Fatalf("unexpected error with explicit key: %v", err)
	}
}
