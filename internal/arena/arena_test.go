package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAcquirer struct {
	limit    int64
	used     int64
	acquires int
	releases int
}

var errBudget = errors.New("budget exhausted")

func (c *countingAcquirer) AcquireMemory(amount int64) error {
	if c.limit > 0 && c.used+amount > c.limit {
		return errBudget
	}
	c.used += amount
	c.acquires++
	return nil
}

func (c *countingAcquirer) ReleaseMemory(amount int64) {
	c.used -= amount
	c.releases++
}

func TestPages_New(t *testing.T) {
	t.Run("default page size", func(t *testing.T) {
		p, err := New[uint64](0)
		require.NoError(t, err)
		defer p.Free()

		assert.Equal(t, DefaultPageSize, p.PageSize())
		assert.Equal(t, int64(DefaultPageSize*8), p.PageBytes())
		assert.Equal(t, 0, p.Len())
		assert.Equal(t, 0, p.Cap())
	})

	t.Run("rounds up to power of two", func(t *testing.T) {
		for _, tc := range []struct{ in, want int }{
			{1, 1},
			{3, 4},
			{64, 64},
			{1025, 2048},
		} {
			p, err := New[byte](tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.PageSize(), "pageSize=%d", tc.in)
		}
	})
}

func TestPages_Append(t *testing.T) {
	t.Run("positions are sequential", func(t *testing.T) {
		p, err := New[int](4)
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			pos, err := p.Append(i * 10)
			require.NoError(t, err)
			assert.Equal(t, i, pos)
		}

		assert.Equal(t, 10, p.Len())
		assert.Equal(t, 12, p.Cap())
		for i := 0; i < 10; i++ {
			assert.Equal(t, i*10, *p.At(i))
		}
	})

	t.Run("pointers survive growth", func(t *testing.T) {
		p, err := New[int](2)
		require.NoError(t, err)

		_, err = p.Append(7)
		require.NoError(t, err)
		first := p.At(0)

		for i := 0; i < 100; i++ {
			_, err := p.Append(i)
			require.NoError(t, err)
		}

		assert.Same(t, first, p.At(0))
		*first = 8
		assert.Equal(t, 8, *p.At(0))
	})

	t.Run("failed growth leaves storage unchanged", func(t *testing.T) {
		acq := &countingAcquirer{limit: 2 * 4 * 8}
		p, err := New[uint64](4, WithMemoryAcquirer(acq))
		require.NoError(t, err)

		for i := 0; i < 8; i++ {
			_, err := p.Append(uint64(i))
			require.NoError(t, err)
		}

		_, err = p.Append(99)
		require.ErrorIs(t, err, errBudget)
		assert.Equal(t, 8, p.Len())
		assert.Equal(t, 8, p.Cap())
		assert.Equal(t, 2, acq.acquires)
	})
}

func TestPages_Reserve(t *testing.T) {
	acq := &countingAcquirer{}
	var grows []int
	p, err := New[uint32](8, WithMemoryAcquirer(acq), WithGrowHook(func(pages int, bytes int64) {
		grows = append(grows, pages)
		assert.Equal(t, int64(32), bytes)
	}))
	require.NoError(t, err)

	require.NoError(t, p.Reserve(20))
	assert.Equal(t, 24, p.Cap())
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, []int{1, 2, 3}, grows)
	assert.Equal(t, int64(96), acq.used)

	// Already satisfied
	require.NoError(t, p.Reserve(24))
	assert.Equal(t, 3, acq.acquires)
}

func TestPages_Free(t *testing.T) {
	acq := &countingAcquirer{}
	p, err := New[uint64](16, WithMemoryAcquirer(acq))
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		_, err := p.Append(uint64(i))
		require.NoError(t, err)
	}

	stats := p.Stats()
	assert.Equal(t, uint64(3), stats.PagesAllocated)
	assert.Equal(t, 3, stats.ActivePages)
	assert.Equal(t, int64(3*16*8), stats.BytesReserved)
	assert.Equal(t, stats.BytesReserved, acq.used)

	p.Free()
	assert.True(t, p.Closed())
	assert.Equal(t, int64(0), acq.used)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.Cap())

	// Idempotent
	p.Free()
	assert.Equal(t, 1, acq.releases)

	_, err = p.Append(1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, p.Reserve(1), ErrClosed)

	stats = p.Stats()
	assert.Equal(t, uint64(3), stats.PagesAllocated)
	assert.Equal(t, 0, stats.ActivePages)
}

func TestPages_String(t *testing.T) {
	p, err := New[uint64](128)
	require.NoError(t, err)
	_, err = p.Append(1)
	require.NoError(t, err)

	assert.Equal(t, "Pages{pages: 1, len: 1, cap: 128, reserved: 1.00 KB}", p.String())
}
