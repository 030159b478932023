//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsOf(t *testing.T) {
	assert.Equal(t, 8, BitsOf[uint8]())
	assert.Equal(t, 16, BitsOf[uint16]())
	assert.Equal(t, 32, BitsOf[uint32]())
	assert.Equal(t, 64, BitsOf[uint64]())
	assert.Equal(t, 64, NativeBits)
}

func TestMaxOf(t *testing.T) {
	assert.Equal(t, uint8(math.MaxUint8), MaxOf[uint8]())
	assert.Equal(t, uint16(math.MaxUint16), MaxOf[uint16]())
	assert.Equal(t, uint32(math.MaxUint32), MaxOf[uint32]())
	assert.Equal(t, uint64(math.MaxUint64), MaxOf[uint64]())
}

func TestFitsNative(t *testing.T) {
	assert.True(t, FitsNative[uint8]())
	assert.True(t, FitsNative[uint16]())
	assert.True(t, FitsNative[uint32]())
	assert.False(t, FitsNative[uint64]())
	assert.False(t, FitsNative[uint]())
	assert.False(t, FitsNative[uintptr]())
}

func TestIntToUnsigned(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUnsigned[uint8](0)
		assert.NoError(t, err)
		assert.Equal(t, uint8(0), got)
	})

	t.Run("valid max", func(t *testing.T) {
		got, err := IntToUnsigned[uint8](math.MaxUint8)
		assert.NoError(t, err)
		assert.Equal(t, uint8(math.MaxUint8), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUnsigned[uint32](-1)
		assert.ErrorContains(t, err, "negative")
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := IntToUnsigned[uint16](math.MaxUint16 + 1)
		assert.ErrorContains(t, err, "uint16")
	})

	t.Run("valid max int32 into uint32", func(t *testing.T) {
		got, err := IntToUnsigned[uint32](math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxInt32), got)
	})
}

func TestUnsignedToInt(t *testing.T) {
	got, err := UnsignedToInt(uint32(math.MaxUint32))
	assert.NoError(t, err)
	assert.Equal(t, math.MaxUint32, got)

	_, err = UnsignedToInt(uint64(math.MaxUint64))
	assert.Error(t, err)
}

func TestMulInt64(t *testing.T) {
	got, err := MulInt64(1024, 48)
	assert.NoError(t, err)
	assert.Equal(t, int64(49152), got)

	got, err = MulInt64(0, math.MaxInt64)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), got)

	_, err = MulInt64(math.MaxInt64, 2)
	assert.Error(t, err)

	_, err = MulInt64(-1, 2)
	assert.Error(t, err)
}
