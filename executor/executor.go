// Package executor provides the execution backends behind batched dispatch.
//
// An Executor is the capability tag threaded through every bisect operation:
// its concrete type selects the strategy used to run the independent
// per-query tasks of a batch. All backends satisfy the same two narrow
// contracts, an elementwise apply with no ordering guarantee and a transient
// staging allocator scoped to a single operation.
//
// Three backends exist:
//
//   - Serial: inline execution on the calling goroutine (zero-size tag)
//   - Parallel: stateless chunked fan-out via errgroup
//   - Pool: long-lived fixed worker pool for sustained high query load
//
// The process default is chosen by Default and can be overridden with the
// BISECT_EXEC environment variable ("serial" or "parallel").
package executor

import "context"

// Executor runs the independent per-element tasks of a batched operation.
type Executor interface {
	// ForEach applies task once for every index in [0, n). Tasks must not
	// share mutable state: each reads common read-only inputs and writes a
	// slot no other task writes. Completion order is unspecified.
	//
	// Cancellation is observed before dispatch only: once the first task has
	// been started, the batch runs to completion so callers never observe a
	// partially written output.
	ForEach(ctx context.Context, n int, task func(i int)) error

	// AcquireStaging reserves bytes of transient staging memory for the
	// duration of one operation. The returned release must be called exactly
	// once, normally via defer, on every exit path.
	AcquireStaging(ctx context.Context, bytes int64) (release func(), err error)
}

// Serial executes every task inline on the calling goroutine.
//
// It is a zero-size tag: passing Serial{} costs nothing and pins dispatch to
// the sequential strategy.
type Serial struct{}

// ForEach runs the tasks in index order on the calling goroutine.
func (Serial) ForEach(ctx context.Context, n int, task func(i int)) error {
	if n == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		task(i)
	}

	return nil
}

// AcquireStaging is free for the serial backend; staging lives in ordinary
// caller memory.
func (Serial) AcquireStaging(context.Context, int64) (func(), error) {
	return func() {}, nil
}

func (Serial) String() string { return "serial" }
