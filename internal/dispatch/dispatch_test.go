package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bisect/executor"
)

var errStaging = errors.New("staging exhausted")

// fakeExecutor records dispatch and staging activity and can be told to fail
// the k-th staging acquisition.
type fakeExecutor struct {
	executor.Serial

	dispatches int
	acquired   int
	released   int
	failAt     int // fail the n-th acquisition (1-based); 0 = never
}

func (f *fakeExecutor) ForEach(ctx context.Context, n int, task func(int)) error {
	f.dispatches++
	return f.Serial.ForEach(ctx, n, task)
}

func (f *fakeExecutor) AcquireStaging(ctx context.Context, bytes int64) (func(), error) {
	f.acquired++
	if f.failAt != 0 && f.acquired == f.failAt {
		return nil, errStaging
	}
	return func() { f.released++ }, nil
}

func intLess(a, b int) bool { return a < b }

func TestBatchScenario(t *testing.T) {
	ctx := context.Background()
	data := []int{1, 3, 3, 3, 5, 7}
	values := []int{0, 3, 4, 8}

	out := make([]int, len(values))
	require.NoError(t, Batch(ctx, executor.Serial{}, data, values, out, intLess, LowerBound[int]))
	assert.Equal(t, []int{0, 1, 4, 6}, out)

	require.NoError(t, Batch(ctx, executor.Serial{}, data, values, out, intLess, UpperBound[int]))
	assert.Equal(t, []int{0, 4, 4, 6}, out)

	hits := make([]bool, len(values))
	require.NoError(t, Batch(ctx, executor.Serial{}, data, values, hits, intLess, Contains[int]))
	assert.Equal(t, []bool{false, true, false, false}, hits)
}

func TestBatchEmptyIsNoop(t *testing.T) {
	fake := &fakeExecutor{}

	err := Batch(context.Background(), fake, []int{1, 2, 3}, nil, nil, intLess, LowerBound[int])
	require.NoError(t, err)
	assert.Zero(t, fake.dispatches, "empty batch must not reach the executor")
}

func TestScalarMatchesBatch(t *testing.T) {
	ctx := context.Background()
	data := []int{1, 3, 3, 3, 5, 7}

	for v := -1; v <= 9; v++ {
		got, err := Scalar(ctx, executor.Serial{}, data, v, intLess, LowerBound[int])
		require.NoError(t, err)

		out := make([]int, 1)
		require.NoError(t, Batch(ctx, executor.Serial{}, data, []int{v}, out, intLess, LowerBound[int]))
		assert.Equal(t, out[0], got, "value %d", v)
	}
}

func TestScalarUsesBatchOfOne(t *testing.T) {
	fake := &fakeExecutor{}

	got, err := Scalar(context.Background(), fake, []int{1, 3, 5}, 3, intLess, LowerBound[int])
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, fake.dispatches)
	assert.Equal(t, 2, fake.acquired, "one query buffer, one result buffer")
	assert.Equal(t, 2, fake.released, "both staging buffers released")
}

func TestScalarReleasesStagingOnFailure(t *testing.T) {
	// First acquisition fails: nothing to release.
	fake := &fakeExecutor{failAt: 1}
	_, err := Scalar(context.Background(), fake, []int{1, 3, 5}, 3, intLess, LowerBound[int])
	require.ErrorIs(t, err, errStaging)
	assert.Zero(t, fake.released)

	// Second acquisition fails: the first buffer must still be released.
	fake = &fakeExecutor{failAt: 2}
	_, err = Scalar(context.Background(), fake, []int{1, 3, 5}, 3, intLess, LowerBound[int])
	require.ErrorIs(t, err, errStaging)
	assert.Equal(t, 1, fake.released)
}

func TestScalarPropagatesDispatchFailure(t *testing.T) {
	fake := &fakeExecutor{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scalar(ctx, fake, []int{1, 3, 5}, 3, intLess, LowerBound[int])
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, fake.released, "staging released on the failure path")
}

func TestKernelsOnEmptyRange(t *testing.T) {
	ctx := context.Background()

	lb, err := Scalar(ctx, executor.Serial{}, nil, 42, intLess, LowerBound[int])
	require.NoError(t, err)
	ub, err := Scalar(ctx, executor.Serial{}, nil, 42, intLess, UpperBound[int])
	require.NoError(t, err)
	ok, err := Scalar(ctx, executor.Serial{}, nil, 42, intLess, Contains[int])
	require.NoError(t, err)

	assert.Equal(t, 0, lb)
	assert.Equal(t, 0, ub)
	assert.False(t, ok)
}
