package executor

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of queries handed to one goroutine or
// worker at a time. Chunking amortizes scheduling overhead across many small
// per-query tasks.
const DefaultChunkSize = 256

// Parallel fans a batch out across goroutines in fixed-size chunks.
//
// The zero value is ready to use. Parallel holds no state between calls, so a
// single value may be shared freely across goroutines.
type Parallel struct {
	// ChunkSize is the number of queries per goroutine. 0 means
	// DefaultChunkSize.
	ChunkSize int

	// MaxProcs caps the number of concurrently running chunks.
	// 0 means GOMAXPROCS.
	MaxProcs int
}

// ForEach applies task to every index in [0, n), fanning chunks out across
// up to MaxProcs goroutines. Batches no larger than one chunk run inline.
func (p Parallel) ForEach(ctx context.Context, n int, task func(i int)) error {
	if n == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	chunk := p.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	limit := p.MaxProcs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	// Not worth a fan-out: run inline.
	if n <= chunk || limit == 1 {
		for i := 0; i < n; i++ {
			task(i)
		}
		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				task(i)
			}
			return nil
		})
	}

	return g.Wait()
}

// AcquireStaging is free for the parallel backend; staging lives in ordinary
// caller memory.
func (Parallel) AcquireStaging(context.Context, int64) (func(), error) {
	return func() {}, nil
}

func (Parallel) String() string { return "parallel" }
