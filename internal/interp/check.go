package interp

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CheckResult is the outcome of running a script over one input file.
type CheckResult struct {
	File   string
	Output []byte
	Err    error
}

// CheckAll evaluates one script against many input files concurrently.
// Results keep the input order; per-file failures (unreadable file
// included) land in the result rather than stopping the run.
func CheckAll(ctx context.Context, ev Evaluator, script string, files []string, jobs int) []CheckResult {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			results[i] = checkOne(gctx, ev, script, file)
			return nil
		})
	}
	// Workers never return errors; Wait only observes ctx cancellation.
	_ = g.Wait()
	return results
}

func checkOne(ctx context.Context, ev Evaluator, script, file string) CheckResult {
	input, err := os.ReadFile(file)
	if err != nil {
		return CheckResult{File: file, Err: err}
	}
	out, err := ev.Eval(ctx, script, input)
	return CheckResult{File: file, Output: out, Err: err}
}
