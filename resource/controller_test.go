package resource

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	// Test with limit
	c := NewController(Config{MemoryLimitBytes: 100})

	// Acquire 50
	err := c.AcquireMemory(50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	// Acquire 40
	err = c.AcquireMemory(40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Acquire 20 (should fail - limit exceeded)
	err = c.AcquireMemory(20)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Release 50
	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	// Now Acquire 20 should succeed
	err = c.AcquireMemory(20)
	require.NoError(t, err)
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 0})

	err := c.AcquireMemory(1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
}

func TestController_NonPositive(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})

	require.NoError(t, c.AcquireMemory(0))
	require.NoError(t, c.AcquireMemory(-5))
	c.ReleaseMemory(-5)
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_GrowthRate(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewController(Config{GrowthBytesPerSec: 100})
	c.now = func() time.Time { return now }

	assert.Equal(t, int64(100), c.GrowthBurst())

	// The bucket starts full.
	require.NoError(t, c.AcquireMemory(100))

	// Nothing left in the same instant.
	err := c.AcquireMemory(1)
	assert.ErrorIs(t, err, ErrGrowthRateExceeded)
	assert.Equal(t, int64(100), c.MemoryUsage())

	// Releasing memory does not refund the budget.
	c.ReleaseMemory(100)
	assert.ErrorIs(t, c.AcquireMemory(1), ErrGrowthRateExceeded)

	// Half a second later half the budget is back.
	now = now.Add(500 * time.Millisecond)
	require.NoError(t, c.AcquireMemory(50))
	assert.ErrorIs(t, c.AcquireMemory(1), ErrGrowthRateExceeded)
}

func TestController_GrowthBurst(t *testing.T) {
	c := NewController(Config{GrowthBytesPerSec: 10, GrowthBurstBytes: 1000})
	assert.Equal(t, int64(1000), c.GrowthBurst())
	require.NoError(t, c.AcquireMemory(1000))

	// A reservation larger than the burst can never be admitted.
	c2 := NewController(Config{GrowthBytesPerSec: 10})
	assert.ErrorIs(t, c2.AcquireMemory(11), ErrGrowthRateExceeded)
}

func TestController_GrowthFailureReturnsMemory(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewController(Config{MemoryLimitBytes: 100, GrowthBytesPerSec: 10})
	c.now = func() time.Time { return now }

	require.NoError(t, c.AcquireMemory(10))
	assert.ErrorIs(t, c.AcquireMemory(10), ErrGrowthRateExceeded)

	// The failed reservation must not hold semaphore weight.
	now = now.Add(10 * time.Second)
	require.NoError(t, c.AcquireMemory(10))
	assert.Equal(t, int64(20), c.MemoryUsage())
}

func TestController_NilChecks(t *testing.T) {
	var c *Controller
	assert.NoError(t, c.AcquireMemory(10))
	c.ReleaseMemory(10) // Should not panic
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
	assert.Equal(t, int64(0), c.GrowthBurst())
}

func TestController_ConcurrentAcquire(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 1000})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.AcquireMemory(10); err == nil {
				c.ReleaseMemory(10)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(0), c.MemoryUsage())
}
