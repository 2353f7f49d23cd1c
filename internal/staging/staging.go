// Package staging provides transient buffers for bridging scalar calls onto
// the batched dispatch path.
//
// A staging buffer lives for exactly one operation: acquired, populated,
// consumed and released inside a single call, never retained or shared.
package staging

import (
	"context"
	"unsafe"

	"github.com/hupe1980/bisect/executor"
)

// Acquire reserves an n-element buffer in the executor's staging domain.
//
// The returned release must be called exactly once when the enclosing
// operation ends, regardless of outcome. Acquiring zero elements is valid and
// yields a nil buffer with a no-op release.
func Acquire[T any](ctx context.Context, ex executor.Executor, n int) ([]T, func(), error) {
	if n <= 0 {
		return nil, func() {}, nil
	}

	var zero T
	bytes := int64(n) * int64(unsafe.Sizeof(zero))

	release, err := ex.AcquireStaging(ctx, bytes)
	if err != nil {
		return nil, nil, err
	}

	return make([]T, n), release, nil
}
