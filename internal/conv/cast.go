package conv

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// NativeBits is the bit width of the platform's pointer-sized unsigned integer.
const NativeBits = int(unsafe.Sizeof(uint(0))) * 8

// BitsOf returns the bit width of U.
func BitsOf[U constraints.Unsigned]() int {
	var zero U
	return int(unsafe.Sizeof(zero)) * 8
}

// MaxOf returns the largest value representable by U.
func MaxOf[U constraints.Unsigned]() U {
	return ^U(0)
}

// FitsNative reports whether every value of U can be widened to int
// without overflow, i.e. bits(U) < NativeBits.
func FitsNative[U constraints.Unsigned]() bool {
	return BitsOf[U]() < NativeBits
}

// IntToUnsigned converts int to U safely.
func IntToUnsigned[U constraints.Unsigned](v int) (U, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to %T (negative)", v, U(0))
	}
	if uint64(v) > uint64(MaxOf[U]()) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to %T (too large)", v, U(0))
	}
	return U(v), nil
}

// UnsignedToInt converts U to int safely.
func UnsignedToInt[U constraints.Unsigned](v U) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// MulInt64 multiplies two non-negative values, reporting overflow.
func MulInt64(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("integer overflow: %d * %d has a negative operand", a, b)
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, fmt.Errorf("integer overflow: %d * %d exceeds int64", a, b)
	}
	return a * b, nil
}
