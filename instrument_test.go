package bisect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bisect"
	"github.com/hupe1980/bisect/executor"
)

func TestInstrumentRecordsDispatches(t *testing.T) {
	ctx := context.Background()
	data := []int{1, 3, 3, 3, 5, 7}

	metrics := &bisect.BasicMetricsCollector{}
	ex := bisect.Instrument(executor.Serial{}, metrics, bisect.NoopLogger())

	out := make([]int, 4)
	require.NoError(t, bisect.LowerBoundBatch(ctx, ex, data, []int{0, 3, 4, 8}, out))

	_, err := bisect.LowerBound(ctx, ex, data, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(2), metrics.DispatchCount.Load())
	assert.Equal(t, int64(5), metrics.QueriesDispatched.Load(), "batch of 4 plus scalar batch of 1")
	assert.Equal(t, int64(0), metrics.DispatchErrors.Load())

	// The scalar bridge stages one query and one result buffer.
	assert.Equal(t, int64(2), metrics.StagingAcquires.Load())
	assert.Equal(t, int64(0), metrics.StagingErrors.Load())
}

func TestInstrumentRecordsErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	metrics := &bisect.BasicMetricsCollector{}
	ex := bisect.Instrument(executor.Serial{}, metrics, nil)

	err := bisect.LowerBoundBatch(ctx, ex, []int{1}, []int{1}, make([]int, 1))
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, int64(1), metrics.DispatchErrors.Load())
}

func TestInstrumentDefaults(t *testing.T) {
	ex := bisect.Instrument(executor.Parallel{}, nil, nil)

	lo, err := bisect.LowerBound(context.Background(), ex, []int{1, 2, 3}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, lo)
}
