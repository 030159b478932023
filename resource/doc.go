// Package resource implements memory provisioning for arenas.
//
// A Controller hands out byte reservations to arena storage whenever the
// arena grows by a page, and takes them back when the arena is closed.
// Two independent limits can be enforced:
//
//   - Memory: a hard cap on reserved bytes (weighted semaphore, fail-fast)
//   - Growth: a token-bucket budget on how fast new bytes may be reserved
//
// # Usage
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:  64 << 20, // 64MB shared by all arenas using rc
//	    GrowthBytesPerSec: 8 << 20,
//	})
//
//	if err := rc.AcquireMemory(4096); err != nil {
//	    // ErrMemoryLimitExceeded or ErrGrowthRateExceeded
//	}
//	defer rc.ReleaseMemory(4096)
//
// AcquireMemory never blocks. Callers decide whether to retry, back off or
// surface the failure.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
