// Package dispatch contains the batched search engine and the scalar bridge
// built on top of it.
//
// The engine pairs each query with its output slot and hands the pairs to an
// executor as independent tasks; correctness never depends on execution order
// or concurrency degree. The scalar bridge re-expresses a single query as a
// batch of one so that every backend needs exactly one search strategy.
package dispatch

import (
	"context"

	"github.com/hupe1980/bisect/executor"
	"github.com/hupe1980/bisect/internal/scalar"
	"github.com/hupe1980/bisect/internal/staging"
)

// Kernel computes one search result for value against the full sorted range.
// Kernels are stateless; the concrete function is chosen once per call and
// monomorphized by the compiler, so the batched hot loop pays no interface
// dispatch per element.
type Kernel[T, R any] func(data []T, value T, less func(a, b T) bool) R

// LowerBound is the kernel locating the earliest valid insertion offset.
func LowerBound[T any](data []T, value T, less func(a, b T) bool) int {
	return scalar.LowerBound(data, value, less)
}

// UpperBound is the kernel locating the latest valid insertion offset.
func UpperBound[T any](data []T, value T, less func(a, b T) bool) int {
	return scalar.UpperBound(data, value, less)
}

// Contains is the kernel testing membership: it locates the lower bound and
// checks that the element there is equivalent to the query.
func Contains[T any](data []T, value T, less func(a, b T) bool) bool {
	return scalar.Contains(data, value, less)
}

// Batch runs kern once per query, writing result i to out[i].
//
// Pair i is an independent unit of work: it reads data, values[i] and less,
// and writes out[i] only, so the executor may run pairs in any order and any
// interleaving. An empty batch dispatches nothing. Callers validate
// len(out) == len(values) before entering.
func Batch[T, R any](ctx context.Context, ex executor.Executor, data []T, values []T, out []R, less func(a, b T) bool, kern Kernel[T, R]) error {
	if len(values) == 0 {
		return nil
	}

	return ex.ForEach(ctx, len(values), func(i int) {
		out[i] = kern(data, values[i], less)
	})
}

// Scalar answers a single query through the batched path.
//
// The value is staged into a one-element query buffer, dispatched as a batch
// of one, and the lone result copied back out. Both staging buffers are
// released on every exit path, including failures of the nested call, so a
// half-written result is never observable.
func Scalar[T, R any](ctx context.Context, ex executor.Executor, data []T, value T, less func(a, b T) bool, kern Kernel[T, R]) (R, error) {
	var zero R

	in, releaseIn, err := staging.Acquire[T](ctx, ex, 1)
	if err != nil {
		return zero, err
	}
	defer releaseIn()

	out, releaseOut, err := staging.Acquire[R](ctx, ex, 1)
	if err != nil {
		return zero, err
	}
	defer releaseOut()

	in[0] = value

	if err := Batch(ctx, ex, data, in, out, less, kern); err != nil {
		return zero, err
	}

	return out[0], nil
}
