package resource

import (
	"context"
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
}

func TestController_AcquireMemoryContext(t *testing.T) {
	t.Run("waits for release", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 100})
		require.NoError(t, c.AcquireMemory(80))

		done := make(chan error, 1)
		go func() {
			done <- c.AcquireMemoryContext(t.Context(), 50)
		}()

		c.ReleaseMemory(80)
		require.NoError(t, <-done)
		assert.Equal(t, int64(50), c.MemoryUsage())
	})

	t.Run("times out", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 100})
		require.NoError(t, c.AcquireMemory(100))

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		err := c.AcquireMemoryContext(ctx, 1)
		assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, int64(100), c.MemoryUsage())
	})

	t.Run("larger than limit", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 100})
		err := c.AcquireMemoryContext(t.Context(), 101)
		assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	})
}

func TestController_Growth(t *testing.T) {
	c := NewController(Config{GrowthsPerSec: 0.001, GrowthBurst: 2})

	require.NoError(t, c.AllowGrowth())
	require.NoError(t, c.AllowGrowth())
	assert.ErrorIs(t, c.AllowGrowth(), ErrGrowthRateExceeded)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.WaitGrowth(ctx), ErrGrowthRateExceeded)
}

func TestController_AcquireGrowth(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100, GrowthsPerSec: 0.001, GrowthBurst: 1})
	require.NoError(t, c.AcquireMemory(80))

	// Refused for memory: the growth token is not consumed.
	assert.ErrorIs(t, c.AcquireGrowth(50), ErrMemoryLimitExceeded)
	assert.Equal(t, int64(80), c.MemoryUsage())

	c.ReleaseMemory(80)
	require.NoError(t, c.AcquireGrowth(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	// Refused for rate: the memory is given back.
	assert.ErrorIs(t, c.AcquireGrowth(10), ErrGrowthRateExceeded)
	assert.Equal(t, int64(50), c.MemoryUsage())

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireGrowthContext(ctx, 10), ErrGrowthRateExceeded)
	assert.Equal(t, int64(50), c.MemoryUsage())
}

func TestController_NilSafety(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireMemory(100))
	assert.NoError(t, c.AcquireMemoryContext(t.Context(), 100))
	c.ReleaseMemory(100)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
	assert.NoError(t, c.AllowGrowth())
	assert.NoError(t, c.WaitGrowth(t.Context()))
	assert.NoError(t, c.AcquireGrowth(100))
	assert.NoError(t, c.AcquireGrowthContext(t.Context(), 100))
}
