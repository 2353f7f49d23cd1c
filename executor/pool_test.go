package executor

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bisect/resource"
)

func TestPoolForEach(t *testing.T) {
	p := NewPool(WithWorkers(4), WithChunkSize(16))
	defer p.Close()

	coverage(t, p, 0)
	coverage(t, p, 1)
	coverage(t, p, 10)    // inline path (n <= chunk)
	coverage(t, p, 5_000) // queued path
}

func TestPoolConcurrentBatches(t *testing.T) {
	p := NewPool(WithWorkers(4), WithChunkSize(8))
	defer p.Close()

	const n = 1000

	var wg sync.WaitGroup
	results := make([][]int32, 8)
	errs := make([]error, 8)
	for b := 0; b < 8; b++ {
		results[b] = make([]int32, n)
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			hits := results[b]
			errs[b] = p.ForEach(context.Background(), n, func(i int) {
				atomic.AddInt32(&hits[i], 1)
			})
		}(b)
	}
	wg.Wait()

	for b := 0; b < 8; b++ {
		require.NoError(t, errs[b])
		for i, h := range results[b] {
			require.Equal(t, int32(1), h, "batch %d slot %d", b, i)
		}
	}
}

func TestPoolStats(t *testing.T) {
	p := NewPool(WithWorkers(2), WithChunkSize(10))
	defer p.Close()

	require.NoError(t, p.ForEach(context.Background(), 100, func(int) {}))

	stats := p.Stats()
	assert.Equal(t, 2, stats.Workers)
	assert.Equal(t, int64(10), stats.ChunksExecuted)
	assert.Len(t, stats.PerWorker, 2)
}

func TestPoolCloseIsIdempotent(t *testing.T) {
	p := NewPool(WithWorkers(2))
	p.Close()
	p.Close()

	err := p.ForEach(context.Background(), 1000, func(int) {})
	require.ErrorIs(t, err, ErrPoolClosed)

	_, err = p.AcquireStaging(context.Background(), 8)
	require.ErrorIs(t, err, ErrPoolClosed)
}

func TestPoolStagingAccounting(t *testing.T) {
	ctrl := resource.NewController(resource.Config{StagingLimitBytes: 64})
	p := NewPool(WithWorkers(1), WithController(ctrl))
	defer p.Close()

	ctx := context.Background()

	release, err := p.AcquireStaging(ctx, 64)
	require.NoError(t, err)
	assert.Equal(t, int64(64), ctrl.MemoryInUse())

	// The limit is exhausted: the next acquisition must fail once its
	// context expires, leaving usage untouched.
	timeout, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = p.AcquireStaging(timeout, 1)
	require.Error(t, err)

	release()
	assert.Equal(t, int64(0), ctrl.MemoryInUse())
}

func TestPoolAdmission(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MaxConcurrentBatches: 1})
	p := NewPool(WithWorkers(2), WithChunkSize(4), WithController(ctrl))
	defer p.Close()

	ctx := context.Background()

	var inFlight, maxInFlight atomic.Int32
	var wg sync.WaitGroup
	for b := 0; b < 4; b++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := p.ForEach(ctx, 64, func(int) {
				cur := inFlight.Add(1)
				for {
					prev := maxInFlight.Load()
					if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
						break
					}
				}
				time.Sleep(time.Microsecond)
				inFlight.Add(-1)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// With a single admission slot, tasks of different batches never overlap
	// beyond the pool's own workers.
	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
}
