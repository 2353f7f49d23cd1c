package executor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/hupe1980/bisect/resource"
)

// ErrPoolClosed is returned when a batch is dispatched to a closed pool.
var ErrPoolClosed = errors.New("executor: pool closed")

// Pool is a long-lived fixed pool of worker goroutines for sustained high
// query load. It eliminates the overhead of spawning goroutines per batch and
// optionally enforces resource limits through a resource.Controller.
//
// A Pool must be created with NewPool and released with Close.
type Pool struct {
	workers  int
	chunk    int
	workCh   chan func() // carries chunk closures
	stopCh   chan struct{}
	wg       sync.WaitGroup
	closed   atomic.Bool
	submitMu sync.RWMutex

	ctrl   *resource.Controller
	logger *slog.Logger
	stats  []workerStats
}

// workerStats is padded to a full cache line so per-worker counters do not
// false-share under heavy dispatch.
type workerStats struct {
	tasks atomic.Int64
	_     cpu.CacheLinePad
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		p.workers = n
	}
}

// WithChunkSize sets the number of queries per submitted work item.
// Defaults to DefaultChunkSize.
func WithChunkSize(n int) PoolOption {
	return func(p *Pool) {
		p.chunk = n
	}
}

// WithController attaches a resource controller. The pool then accounts
// staging memory against it and admits batches through it.
func WithController(c *resource.Controller) PoolOption {
	return func(p *Pool) {
		p.ctrl = c
	}
}

// WithLogger sets the structured logger used for pool lifecycle events.
// Defaults to a discarding logger.
func WithLogger(l *slog.Logger) PoolOption {
	return func(p *Pool) {
		p.logger = l
	}
}

// NewPool creates a pool and starts its workers.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{}

	for _, opt := range opts {
		opt(p)
	}

	if p.workers <= 0 {
		p.workers = runtime.GOMAXPROCS(0)
	}
	if p.chunk <= 0 {
		p.chunk = DefaultChunkSize
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p.workCh = make(chan func(), p.workers*2) // 2x buffer for pipelining
	p.stopCh = make(chan struct{})
	p.stats = make([]workerStats, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.worker(i)
	}

	p.logger.Debug("pool started", "workers", p.workers, "chunk_size", p.chunk)

	return p
}

// worker processes chunk closures from the work channel.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			// Drain remaining work before exiting so in-flight batches
			// complete every slot.
			for {
				select {
				case fn, ok := <-p.workCh:
					if !ok {
						return
					}
					fn()
					p.stats[id].tasks.Add(1)
				default:
					return
				}
			}
		case fn, ok := <-p.workCh:
			if !ok {
				return
			}
			fn()
			p.stats[id].tasks.Add(1)
		}
	}
}

// ForEach applies task to every index in [0, n) on the pool's workers.
//
// Admission (rate limiting, concurrent-batch cap) happens before any task is
// started; once chunks are enqueued the whole batch runs to completion, even
// if the pool is closed concurrently, so output slots are never left half
// written.
func (p *Pool) ForEach(ctx context.Context, n int, task func(i int)) error {
	if n == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.ctrl.AdmitBatch(ctx, n); err != nil {
		return err
	}
	defer p.ctrl.ReleaseBatch()

	// Small batches skip the queue round-trip.
	if n <= p.chunk {
		if p.closed.Load() {
			return ErrPoolClosed
		}
		for i := 0; i < n; i++ {
			task(i)
		}
		return nil
	}

	// Hold the submit lock across the whole submission so Close cannot stop
	// the workers between the first and last chunk of one batch.
	p.submitMu.RLock()
	if p.closed.Load() {
		p.submitMu.RUnlock()
		return ErrPoolClosed
	}

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += p.chunk {
		lo, hi := lo, min(lo+p.chunk, n)
		wg.Add(1)
		p.workCh <- func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				task(i)
			}
		}
	}
	p.submitMu.RUnlock()

	wg.Wait()

	return nil
}

// AcquireStaging reserves transient staging memory, accounted against the
// pool's resource controller when one is attached.
func (p *Pool) AcquireStaging(ctx context.Context, bytes int64) (func(), error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	if err := p.ctrl.AcquireMemory(ctx, bytes); err != nil {
		return nil, err
	}

	return func() { p.ctrl.ReleaseMemory(bytes) }, nil
}

// PoolStats is a snapshot of pool activity.
type PoolStats struct {
	Workers        int
	ChunksExecuted int64   // total chunk closures run
	PerWorker      []int64 // chunk closures run per worker
}

// Stats returns a snapshot of pool activity.
func (p *Pool) Stats() PoolStats {
	s := PoolStats{
		Workers:   p.workers,
		PerWorker: make([]int64, p.workers),
	}
	for i := range p.stats {
		v := p.stats[i].tasks.Load()
		s.PerWorker[i] = v
		s.ChunksExecuted += v
	}
	return s
}

// Close shuts the pool down gracefully. Queued work is drained before the
// workers exit. Close is idempotent.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	p.submitMu.Lock()
	close(p.stopCh)
	close(p.workCh)
	p.submitMu.Unlock()

	p.wg.Wait()

	p.logger.Debug("pool closed", "chunks_executed", p.Stats().ChunksExecuted)
}

func (*Pool) String() string { return "pool" }
