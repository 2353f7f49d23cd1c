package bisect

import (
	"cmp"
	"context"
	"fmt"

	"github.com/hupe1980/bisect/executor"
	"github.com/hupe1980/bisect/internal/dispatch"
)

func checkBatch[T, R any](values []T, out []R) error {
	if len(out) != len(values) {
		return fmt.Errorf("%w: %d values, %d output slots", ErrBatchLength, len(values), len(out))
	}
	return nil
}

// LowerBoundBatchFunc locates the first valid insertion offset for every
// query in values, writing result i to out[i]. Queries are independent tasks
// with no ordering guarantee between them. An empty batch is a no-op.
func LowerBoundBatchFunc[T any](ctx context.Context, ex executor.Executor, data []T, values []T, out []int, less Less[T]) error {
	if err := checkBatch(values, out); err != nil {
		return err
	}
	return dispatch.Batch(ctx, ex, data, values, out, less, dispatch.LowerBound[T])
}

// LowerBoundBatch is LowerBoundBatchFunc with the natural ordering of T.
func LowerBoundBatch[T cmp.Ordered](ctx context.Context, ex executor.Executor, data []T, values []T, out []int) error {
	return LowerBoundBatchFunc(ctx, ex, data, values, out, Ordered[T]())
}

// UpperBoundBatchFunc locates the last valid insertion offset for every
// query in values, writing result i to out[i].
func UpperBoundBatchFunc[T any](ctx context.Context, ex executor.Executor, data []T, values []T, out []int, less Less[T]) error {
	if err := checkBatch(values, out); err != nil {
		return err
	}
	return dispatch.Batch(ctx, ex, data, values, out, less, dispatch.UpperBound[T])
}

// UpperBoundBatch is UpperBoundBatchFunc with the natural ordering of T.
func UpperBoundBatch[T cmp.Ordered](ctx context.Context, ex executor.Executor, data []T, values []T, out []int) error {
	return UpperBoundBatchFunc(ctx, ex, data, values, out, Ordered[T]())
}

// ContainsBatchFunc tests membership for every query in values, writing
// result i to out[i].
func ContainsBatchFunc[T any](ctx context.Context, ex executor.Executor, data []T, values []T, out []bool, less Less[T]) error {
	if err := checkBatch(values, out); err != nil {
		return err
	}
	return dispatch.Batch(ctx, ex, data, values, out, less, dispatch.Contains[T])
}

// ContainsBatch is ContainsBatchFunc with the natural ordering of T.
func ContainsBatch[T cmp.Ordered](ctx context.Context, ex executor.Executor, data []T, values []T, out []bool) error {
	return ContainsBatchFunc(ctx, ex, data, values, out, Ordered[T]())
}

// EqualRangeBatchFunc fills lo[i] and hi[i] with the boundaries of the run
// equivalent to values[i]. The boundaries are computed by two independent
// batched dispatches.
func EqualRangeBatchFunc[T any](ctx context.Context, ex executor.Executor, data []T, values []T, lo, hi []int, less Less[T]) error {
	if err := LowerBoundBatchFunc(ctx, ex, data, values, lo, less); err != nil {
		return err
	}
	return UpperBoundBatchFunc(ctx, ex, data, values, hi, less)
}

// EqualRangeBatch is EqualRangeBatchFunc with the natural ordering of T.
func EqualRangeBatch[T cmp.Ordered](ctx context.Context, ex executor.Executor, data []T, values []T, lo, hi []int) error {
	return EqualRangeBatchFunc(ctx, ex, data, values, lo, hi, Ordered[T]())
}
