package genarena

import (
	"errors"
	"fmt"

	"github.com/hupe1980/genarena/internal/arena"
	"github.com/hupe1980/genarena/resource"
)

var (
	// ErrClosed is returned by Create and Reserve after Close.
	ErrClosed = errors.New("genarena: arena is closed")

	// ErrAllocationFailed is returned when slot storage cannot grow.
	// The provisioner's error is wrapped alongside it.
	ErrAllocationFailed = errors.New("genarena: allocation failed")

	// ErrIndexSpaceExhausted is returned when the next slot index would not
	// fit the arena's index type.
	ErrIndexSpaceExhausted = errors.New("genarena: index space exhausted")

	// ErrIndexTooWide is returned by New when the index type is not strictly
	// narrower than the platform's native unsigned integer.
	ErrIndexTooWide = errors.New("genarena: index type too wide")

	// ErrInvariantViolation is the sentinel matched by every *InvariantError.
	ErrInvariantViolation = errors.New("genarena: invariant violation")

	// ErrMemoryLimitExceeded re-exports resource.ErrMemoryLimitExceeded so
	// callers can match provisioning failures without importing resource.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

	// ErrGrowthRateExceeded re-exports resource.ErrGrowthRateExceeded.
	ErrGrowthRateExceeded = resource.ErrGrowthRateExceeded
)

// InvariantError reports a breach of the arena's internal bookkeeping, such
// as a free-list entry that does not point at a free slot.
//
// Create panics with an *InvariantError because the arena can no longer be
// reasoned about; Verify returns one instead.
type InvariantError struct {
	Index  uint64
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("genarena: invariant violated at slot %d: %s", e.Index, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, arena.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}

	return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
}
