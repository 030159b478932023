package genarena

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Generation is the set of integer types usable as a slot generation.
// Its width bounds how often a slot can be reused before the counter wraps.
type Generation interface {
	constraints.Unsigned
}

// Index is the set of integer types usable as a slot index.
// Its width bounds the number of slots an arena can hold; New further
// requires it to be narrower than uint.
type Index interface {
	constraints.Unsigned
}

// Handle addresses one element of an Arena for the element's lifetime.
//
// Handles are plain values: copy them, compare them with ==, use them as map
// keys. Only the arena that issued a handle can resolve it, and only until
// the element is destroyed. The zero Handle is a valid-looking value and
// resolves to the first element ever created in an arena; it carries no
// "null" meaning.
type Handle[G Generation, I Index] struct {
	Index      I
	Generation G
}

// Handle32 is the handle type of arenas created with New32.
type Handle32 = Handle[uint32, uint32]

func (h Handle[G, I]) String() string {
	return fmt.Sprintf("Handle(index=%d, gen=%d)", h.Index, h.Generation)
}
