// Package resource provides process-wide limits for batched dispatch:
// staging memory, concurrent batches, and query throughput.
//
// A nil *Controller is valid and enforces nothing, so callers never need to
// branch on whether limits are configured.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// StagingLimitBytes is the hard limit for in-flight staging memory.
	// If 0, no limit is enforced (only tracking).
	StagingLimitBytes int64

	// MaxConcurrentBatches caps the number of batches admitted at once.
	// If 0, unlimited.
	MaxConcurrentBatches int64

	// QueriesPerSec is the maximum sustained query dispatch rate, charged
	// per batch element. If 0, unlimited.
	QueriesPerSec int
}

// Controller manages shared dispatch resources (staging memory, admission).
type Controller struct {
	cfg Config

	// Staging memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Batch admission
	batchSem *semaphore.Weighted // nil if unlimited

	// Query throughput
	limiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.StagingLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.StagingLimitBytes)
	}

	if cfg.MaxConcurrentBatches > 0 {
		c.batchSem = semaphore.NewWeighted(cfg.MaxConcurrentBatches)
	}

	if cfg.QueriesPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.QueriesPerSec), cfg.QueriesPerSec)
	}

	return c
}

// AcquireMemory attempts to reserve staging memory.
// If a hard limit is configured and usage would exceed it, this blocks until
// memory is available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)

	return nil
}

// ReleaseMemory returns previously acquired staging memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	c.memUsed.Add(-bytes)

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
}

// MemoryInUse returns the currently reserved staging bytes.
func (c *Controller) MemoryInUse() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AdmitBatch admits a batch of n queries for dispatch. It blocks while the
// concurrent-batch limit is saturated or until the rate limiter has quota for
// all n elements. A successful admission must be paired with ReleaseBatch.
func (c *Controller) AdmitBatch(ctx context.Context, n int) error {
	if c == nil {
		return nil
	}

	if c.batchSem != nil {
		if err := c.batchSem.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	if c.limiter != nil {
		if err := c.waitQuota(ctx, n); err != nil {
			if c.batchSem != nil {
				c.batchSem.Release(1)
			}
			return err
		}
	}

	return nil
}

// waitQuota charges n query tokens, slicing requests larger than the burst so
// arbitrarily large batches remain admissible.
func (c *Controller) waitQuota(ctx context.Context, n int) error {
	burst := c.limiter.Burst()
	for n > 0 {
		take := min(n, burst)
		if err := c.limiter.WaitN(ctx, take); err != nil {
			return err
		}
		n -= take
	}
	return nil
}

// ReleaseBatch releases a batch admission slot.
func (c *Controller) ReleaseBatch() {
	if c == nil {
		return
	}

	if c.batchSem != nil {
		c.batchSem.Release(1)
	}
}
