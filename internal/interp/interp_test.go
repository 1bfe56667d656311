package interp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jqplay/internal/diag"
)

func TestMissingBinaryClassifiesAsEnvironment(t *testing.T) {
	jq := NewJQ(filepath.Join(t.TempDir(), "definitely-not-jq"))
	_, err := jq.Eval(context.Background(), ".", []byte("{}"))
	if err == nil {
		t.Fatal("expected an error for a missing binary")
	}
	evalErr, ok := err.(*EvalError)
	if !ok {
		t.Fatalf("expected *EvalError, got %T", err)
	}
	d := diag.Classify(evalErr.Stderr, ".")
	if d.Kind != diag.KindEnvironment {
		t.Fatalf("expected environment diagnostic, got %s (%q)", d.Kind, evalErr.Stderr)
	}
}

type stubEvaluator struct {
	fail map[string]string
}

func (s *stubEvaluator) Eval(_ context.Context, script string, input []byte) ([]byte, error) {
	if msg, ok := s.fail[string(input)]; ok {
		return nil, &EvalError{Stderr: msg}
	}
	return []byte("ok"), nil
}

func TestCheckAllKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i, content := range []string{`{"a":1}`, `bad`, `{"c":3}`} {
		path := filepath.Join(dir, string(rune('a'+i))+".json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		files = append(files, path)
	}
	ev := &stubEvaluator{fail: map[string]string{"bad": "jq: error: boom"}}

	results := CheckAll(context.Background(), ev, ".", files, 2)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.File != files[i] {
			t.Fatalf("result %d out of order: %s", i, r.File)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("unexpected failures: %v / %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil || !strings.Contains(results[1].Err.Error(), "boom") {
		t.Fatalf("expected boom failure, got %v", results[1].Err)
	}
}

func TestCheckAllUnreadableFile(t *testing.T) {
	results := CheckAll(context.Background(), &stubEvaluator{}, ".",
		[]string{filepath.Join(t.TempDir(), "missing.json")}, 1)
	if results[0].Err == nil {
		t.Fatal("expected a read error")
	}
}
