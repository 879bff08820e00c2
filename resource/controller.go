package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
	// ErrGrowthRateExceeded is returned when the growth rate limit is exhausted.
	ErrGrowthRateExceeded = errors.New("growth rate exceeded")
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for reserved segment memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// GrowthsPerSec bounds how many growth events per second are admitted.
	// If 0, unlimited.
	GrowthsPerSec float64

	// GrowthBurst is the number of growth events admitted at once.
	// If 0, defaults to 1.
	GrowthBurst int
}

// Controller manages shared resources (memory, growth rate).
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Growth
	growthLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.GrowthBurst <= 0 {
		cfg.GrowthBurst = 1
	}

	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.GrowthsPerSec > 0 {
		c.growthLimiter = rate.NewLimiter(rate.Limit(cfg.GrowthsPerSec), cfg.GrowthBurst)
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking - callers control retry/backoff policy.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// AcquireMemoryContext reserves memory, waiting for other holders to release
// it until ctx is done. Requests larger than the limit fail immediately.
func (c *Controller) AcquireMemoryContext(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if bytes > c.cfg.MemoryLimitBytes {
			return fmt.Errorf("%w: %d bytes requested, limit %d", ErrMemoryLimitExceeded, bytes, c.cfg.MemoryLimitBytes)
		}
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AllowGrowth consumes one growth token without blocking.
// Returns ErrGrowthRateExceeded if none is available.
func (c *Controller) AllowGrowth() error {
	if c == nil || c.growthLimiter == nil {
		return nil
	}
	if !c.growthLimiter.Allow() {
		return ErrGrowthRateExceeded
	}
	return nil
}

// WaitGrowth waits until a growth token is available or ctx is done.
func (c *Controller) WaitGrowth(ctx context.Context) error {
	if c == nil || c.growthLimiter == nil {
		return nil
	}
	if err := c.growthLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrGrowthRateExceeded, err)
	}
	return nil
}

// AcquireGrowth admits one growth event needing bytes of memory without
// blocking. Memory is reserved first; if the growth rate then refuses the
// event, the memory is released again, so a refused growth consumes nothing.
func (c *Controller) AcquireGrowth(bytes int64) error {
	if c == nil {
		return nil
	}
	if err := c.AcquireMemory(bytes); err != nil {
		return err
	}
	if err := c.AllowGrowth(); err != nil {
		c.ReleaseMemory(bytes)
		return err
	}
	return nil
}

// AcquireGrowthContext is the blocking variant of AcquireGrowth. It waits for
// memory and then for a growth token until ctx is done.
func (c *Controller) AcquireGrowthContext(ctx context.Context, bytes int64) error {
	if c == nil {
		return nil
	}
	if err := c.AcquireMemoryContext(ctx, bytes); err != nil {
		return err
	}
	if err := c.WaitGrowth(ctx); err != nil {
		c.ReleaseMemory(bytes)
		return err
	}
	return nil
}
