// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow
// when converting between Go's int and the fixed-width unsigned types an
// arena is instantiated with.
//
// Use cases:
//   - Turning a slot position (int) into an arena index type
//   - Validating at construction time that an index type can always be
//     widened to int for addressing
//   - Sizing page reservations in bytes
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
