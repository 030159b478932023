package genarena

// slotState discriminates the slot union. The zero value is deliberately
// invalid so unwritten storage is never mistaken for a live slot.
type slotState uint8

const (
	slotInvalid slotState = iota
	slotOccupied
	slotFree
	slotRetired
)

func (s slotState) String() string {
	switch s {
	case slotOccupied:
		return "occupied"
	case slotFree:
		return "free"
	case slotRetired:
		return "retired"
	default:
		return "invalid"
	}
}

// slot is one cell of the arena.
//
//	occupied: generation, value
//	free:     generation, next (valid iff hasNext)
//	retired:  generation
//
// Fields not belonging to the current state are kept zero.
type slot[T any, G Generation, I Index] struct {
	value      T
	generation G
	next       I
	hasNext    bool
	state      slotState
}

func occupiedSlot[T any, G Generation, I Index](gen G, value T) slot[T, G, I] {
	return slot[T, G, I]{value: value, generation: gen, state: slotOccupied}
}

func freeSlot[T any, G Generation, I Index](gen G, next I, hasNext bool) slot[T, G, I] {
	return slot[T, G, I]{generation: gen, next: next, hasNext: hasNext, state: slotFree}
}

func retiredSlot[T any, G Generation, I Index](gen G) slot[T, G, I] {
	return slot[T, G, I]{generation: gen, state: slotRetired}
}
