package bisect

import (
	"cmp"
	"context"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/bisect/executor"
	"github.com/hupe1980/bisect/internal/staging"
)

// ContainsBitmapFunc runs a batched membership test and collects the indices
// of the matching queries into a roaring bitmap, ready to drive filter
// pipelines. Bit i is set iff values[i] is present in data under less.
//
// The boolean results are staged in transient memory and never escape the
// call; only the bitmap is returned.
func ContainsBitmapFunc[T any](ctx context.Context, ex executor.Executor, data []T, values []T, less Less[T]) (*roaring.Bitmap, error) {
	bm := roaring.New()
	if len(values) == 0 {
		return bm, nil
	}

	out, release, err := staging.Acquire[bool](ctx, ex, len(values))
	if err != nil {
		return nil, err
	}
	defer release()

	if err := ContainsBatchFunc(ctx, ex, data, values, out, less); err != nil {
		return nil, err
	}

	for i, hit := range out {
		if hit {
			bm.Add(uint32(i)) //nolint:gosec // batch lengths fit uint32
		}
	}

	return bm, nil
}

// ContainsBitmap is ContainsBitmapFunc with the natural ordering of T.
func ContainsBitmap[T cmp.Ordered](ctx context.Context, ex executor.Executor, data []T, values []T) (*roaring.Bitmap, error) {
	return ContainsBitmapFunc(ctx, ex, data, values, Ordered[T]())
}
