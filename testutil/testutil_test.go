package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOps_Deterministic(t *testing.T) {
	a := NewRNG(4711).Ops(100, DefaultOpMix)
	b := NewRNG(4711).Ops(100, DefaultOpMix)

	assert.Equal(t, a, b)
	assert.Len(t, a, 100)
}

func TestOps_Mix(t *testing.T) {
	rng := NewRNG(1)

	ops := rng.Ops(200, OpMix{Get: 1})
	for _, op := range ops {
		assert.Equal(t, OpGet, op.Kind)
		assert.GreaterOrEqual(t, op.Pick, 0)
	}

	ops = rng.Ops(50, OpMix{})
	for _, op := range ops {
		assert.Equal(t, OpCreate, op.Kind)
	}

	counts := map[OpKind]int{}
	for _, op := range rng.Ops(4000, DefaultOpMix) {
		counts[op.Kind]++
	}
	assert.Len(t, counts, 4)
	assert.Greater(t, counts[OpCreate], counts[OpDestroyStale])
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(42)
	first := rng.Uint64()
	_ = rng.Intn(10)

	rng.Reset()
	assert.Equal(t, first, rng.Uint64())
	assert.Equal(t, int64(42), rng.Seed())
}

func TestShuffle(t *testing.T) {
	perm := NewRNG(7).Shuffle(32)
	assert.Len(t, perm, 32)
	assert.ElementsMatch(t, func() []int {
		s := make([]int, 32)
		for i := range s {
			s[i] = i
		}
		return s
	}(), perm)
}

func TestOpKind_String(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "destroy", OpDestroy.String())
	assert.Equal(t, "get", OpGet.String())
	assert.Equal(t, "destroy-stale", OpDestroyStale.String())
	assert.Equal(t, "unknown", OpKind(99).String())
}
