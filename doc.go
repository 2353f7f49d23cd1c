// Package bisect provides batched, parallel-friendly ordered-search dispatch
// for Go.
//
// Bisect turns the classic scalar ordered-search primitives — lower bound,
// upper bound and membership over a sorted slice — into batched operations
// that fan out across an execution backend, and answers scalar queries by
// round-tripping through the same batched path as a batch of one. Each
// backend therefore needs exactly one search strategy.
//
// # Quick Start
//
//	ctx := context.Background()
//	data := []int{1, 3, 3, 3, 5, 7}
//
//	// Scalar queries (bridged through the batched path internally).
//	lo, _ := bisect.LowerBound(ctx, executor.Default(), data, 3) // 1
//	hi, _ := bisect.UpperBound(ctx, executor.Default(), data, 3) // 4
//	ok, _ := bisect.Contains(ctx, executor.Default(), data, 4)   // false
//
//	// Batched queries: one independent task per element.
//	values := []int{0, 3, 4, 8}
//	out := make([]int, len(values))
//	_ = bisect.LowerBoundBatch(ctx, executor.Parallel{}, data, values, out)
//	// out == [0 1 4 6]
//
// # Backends
//
// The executor argument is a capability tag: its concrete type statically
// selects the execution strategy. executor.Serial runs inline,
// executor.Parallel fans out chunked goroutines, and executor.Pool keeps a
// fixed worker pool with optional resource limits for sustained load.
//
// # Custom orderings
//
// Every operation has a Func variant taking an explicit strict weak ordering;
// the predicate-defaulted forms forward to it with the natural less-than of
// the element type:
//
//	type user struct{ age int }
//	byAge := func(a, b user) bool { return a.age < b.age }
//	i, _ := bisect.LowerBoundFunc(ctx, executor.Serial{}, users, probe, byAge)
//
// Searched slices must be sorted (non-decreasing) under the predicate in use.
// Sortedness is not checked; searching an unsorted slice yields unspecified
// positions.
package bisect
