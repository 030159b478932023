package genarena

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Verify checks the arena's bookkeeping and returns an *InvariantError
// describing the first inconsistency found, or nil.
//
// It walks the free list (detecting cycles, out-of-range links and links
// to non-free slots), then scans every slot to confirm that each free slot
// is on the list exactly once and that the live, free and retired counts
// match. Verify is O(slots) and meant for tests and debugging.
func (a *Arena[T, G, I]) Verify() error {
	n := a.slots.Len()

	// bits(I) < bits(uint) and roaring addresses uint32, which covers every
	// index on 64-bit platforms and any 16-bit index on 32-bit ones.
	onList := roaring.New()

	if a.hasFree {
		idx, hasNext := a.firstFree, true
		for hasNext {
			if uint64(idx) >= uint64(n) {
				return &InvariantError{Index: uint64(idx), Reason: fmt.Sprintf("free list link beyond %d slots", n)}
			}
			if !onList.CheckedAdd(uint32(idx)) {
				return &InvariantError{Index: uint64(idx), Reason: "free list cycle"}
			}
			s := a.slots.At(int(idx))
			if s.state != slotFree {
				return &InvariantError{Index: uint64(idx), Reason: fmt.Sprintf("free list entry is %s", s.state)}
			}
			idx, hasNext = s.next, s.hasNext
		}
	}

	if listed := int(onList.GetCardinality()); listed != a.free {
		return &InvariantError{Reason: fmt.Sprintf("free list has %d entries, free count is %d", listed, a.free)}
	}

	var live, retired int
	for i := 0; i < n; i++ {
		s := a.slots.At(i)
		switch s.state {
		case slotOccupied:
			live++
		case slotFree:
			if !onList.Contains(uint32(i)) {
				return &InvariantError{Index: uint64(i), Reason: "free slot missing from free list"}
			}
		case slotRetired:
			if a.policy != GenerationRetire {
				return &InvariantError{Index: uint64(i), Reason: "retired slot under wrap policy"}
			}
			retired++
		default:
			return &InvariantError{Index: uint64(i), Reason: fmt.Sprintf("slot is %s", s.state)}
		}
	}

	if live != a.live {
		return &InvariantError{Reason: fmt.Sprintf("%d occupied slots, live count is %d", live, a.live)}
	}
	if retired != a.retired {
		return &InvariantError{Reason: fmt.Sprintf("%d retired slots, retired count is %d", retired, a.retired)}
	}

	return nil
}
