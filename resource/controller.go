package resource

import (
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

	// ErrGrowthRateExceeded is returned when a reservation would exceed the
	// configured growth budget for the current window.
	ErrGrowthRateExceeded = errors.New("growth rate exceeded")
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// GrowthBytesPerSec is the sustained rate at which new memory may be
	// reserved. If 0, unlimited.
	GrowthBytesPerSec int64

	// GrowthBurstBytes is the largest single reservation the growth budget
	// admits. If 0, defaults to GrowthBytesPerSec.
	GrowthBurstBytes int64
}

// Controller provisions memory for one or more arenas.
//
// A single Controller may be shared by several arenas to enforce a combined
// budget. All methods are safe for concurrent use.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Growth
	growthLimiter *rate.Limiter // nil if unlimited

	now func() time.Time
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{
		cfg: cfg,
		now: time.Now,
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.GrowthBytesPerSec > 0 {
		burst := cfg.GrowthBurstBytes
		if burst <= 0 {
			burst = cfg.GrowthBytesPerSec
		}
		c.cfg.GrowthBurstBytes = burst
		c.growthLimiter = rate.NewLimiter(rate.Limit(cfg.GrowthBytesPerSec), int(burst))
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded, or
// ErrGrowthRateExceeded if the growth budget is exhausted.
// Non-blocking - callers control retry/backoff policy.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	if c.growthLimiter != nil {
		if !c.growthLimiter.AllowN(c.now(), int(bytes)) {
			if c.memSem != nil {
				c.memSem.Release(bytes)
			}
			return ErrGrowthRateExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
// Released bytes do not refund the growth budget.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
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

// GrowthBurst returns the largest single reservation admitted by the growth
// budget (0 if unlimited).
func (c *Controller) GrowthBurst() int64 {
	if c == nil || c.growthLimiter == nil {
		return 0
	}
	return c.cfg.GrowthBurstBytes
}
