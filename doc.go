// Package genarena provides a generational arena: a container that stores
// values in index-addressed slots and hands out typed handles that detect
// use after the slot has been reused.
//
// # Quick Start
//
//	a, _ := genarena.New32[string]()
//	defer a.Close()
//
//	h, _ := a.Create("hello")
//	fmt.Println(*a.Get(h)) // hello
//
//	a.Destroy(h)
//	fmt.Println(a.Get(h) == nil) // true: h is stale
//
// # Handles and Generations
//
// A Handle is an (Index, Generation) pair. Every slot carries a generation
// counter that is bumped each time its element is destroyed; a handle only
// resolves while the slot is occupied with the same generation. Creating a
// new element reuses the most recently freed slot first, so the new handle
// shares the old index but not the old generation:
//
//	h1, _ := a.Create("A")
//	a.Destroy(h1)
//	h2, _ := a.Create("B") // h2.Index == h1.Index, h2.Generation == h1.Generation+1
//	a.Get(h1)              // nil
//	*a.Get(h2)             // "B"
//
// Stale, foreign and out-of-range handles are not errors: Get returns nil,
// GetConst reports !ok and Destroy does nothing.
//
// # Type Parameters
//
// Arena[T, G, I] is parameterized over the element type T, the generation
// type G and the index type I. Both integer types must be unsigned, and I
// must be narrower than uint so every index widens to int safely; New
// returns ErrIndexTooWide otherwise. New32 is the common uint32/uint32
// instantiation.
//
// # Generation Wraparound
//
// A generation of width G wraps after 2^bits(G) reuses of one slot. With the
// default GenerationWrap policy the counter wraps silently and a handle that
// old could resolve again. GenerationRetire instead takes the slot out of
// circulation for good.
//
// # Memory
//
// Slots live in fixed-size pages that are never moved, so pointers returned
// by Get survive growth. Each page is charged to a MemoryAcquirer (see
// package resource) when it is allocated, and Close returns all of it:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
//	a, _ := genarena.New32[Node](genarena.WithMemoryAcquirer(rc))
//
//	if _, err := a.Create(n); errors.Is(err, genarena.ErrMemoryLimitExceeded) {
//	    // storage could not grow
//	}
//
// The arena never finalizes stored values. Elements that own resources must
// be released by the caller before Destroy, Reset or Close.
//
// # Thread Safety
//
// An Arena performs no locking. A single owner must serialize mutating
// calls; concurrent readers are fine only while nothing mutates.
package genarena
