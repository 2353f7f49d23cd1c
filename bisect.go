package bisect

import (
	"cmp"
	"context"

	"github.com/hupe1980/bisect/executor"
	"github.com/hupe1980/bisect/internal/dispatch"
)

// Less reports whether a is strictly ordered before b. It must be a strict
// weak ordering (irreflexive, transitive, with transitive incomparability),
// and data searched with it must be sorted non-decreasing under it.
type Less[T any] func(a, b T) bool

// Ordered returns the canonical less-than predicate for an ordered type.
// Every predicate-defaulted operation forwards through this single function;
// comparison logic is never duplicated.
func Ordered[T cmp.Ordered]() Less[T] { return cmp.Less[T] }

// LowerBoundFunc returns the first index in [0, len(data)] at which value
// could be inserted without violating the order defined by less.
func LowerBoundFunc[T any](ctx context.Context, ex executor.Executor, data []T, value T, less Less[T]) (int, error) {
	return dispatch.Scalar(ctx, ex, data, value, less, dispatch.LowerBound[T])
}

// LowerBound is LowerBoundFunc with the natural ordering of T.
func LowerBound[T cmp.Ordered](ctx context.Context, ex executor.Executor, data []T, value T) (int, error) {
	return LowerBoundFunc(ctx, ex, data, value, Ordered[T]())
}

// UpperBoundFunc returns the last index in [0, len(data)] at which value
// could be inserted without violating the order defined by less. Every
// element before the returned index is ordered before or equivalent to value.
func UpperBoundFunc[T any](ctx context.Context, ex executor.Executor, data []T, value T, less Less[T]) (int, error) {
	return dispatch.Scalar(ctx, ex, data, value, less, dispatch.UpperBound[T])
}

// UpperBound is UpperBoundFunc with the natural ordering of T.
func UpperBound[T cmp.Ordered](ctx context.Context, ex executor.Executor, data []T, value T) (int, error) {
	return UpperBoundFunc(ctx, ex, data, value, Ordered[T]())
}

// ContainsFunc reports whether data holds an element equivalent to value
// under less (neither precedes the other).
func ContainsFunc[T any](ctx context.Context, ex executor.Executor, data []T, value T, less Less[T]) (bool, error) {
	return dispatch.Scalar(ctx, ex, data, value, less, dispatch.Contains[T])
}

// Contains is ContainsFunc with the natural ordering of T.
func Contains[T cmp.Ordered](ctx context.Context, ex executor.Executor, data []T, value T) (bool, error) {
	return ContainsFunc(ctx, ex, data, value, Ordered[T]())
}

// EqualRangeFunc returns the half-open index range [lo, hi) of the run of
// elements equivalent to value. The two boundaries are located by two
// independent dispatches; nothing is shared between them.
func EqualRangeFunc[T any](ctx context.Context, ex executor.Executor, data []T, value T, less Less[T]) (lo, hi int, err error) {
	lo, err = LowerBoundFunc(ctx, ex, data, value, less)
	if err != nil {
		return 0, 0, err
	}

	hi, err = UpperBoundFunc(ctx, ex, data, value, less)
	if err != nil {
		return 0, 0, err
	}

	return lo, hi, nil
}

// EqualRange is EqualRangeFunc with the natural ordering of T.
func EqualRange[T cmp.Ordered](ctx context.Context, ex executor.Executor, data []T, value T) (lo, hi int, err error) {
	return EqualRangeFunc(ctx, ex, data, value, Ordered[T]())
}
