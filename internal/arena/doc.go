// Package arena provides paged slot storage for the generational arena.
//
// # Layout
//
// Elements live in fixed-size pages (power of two, 1024 slots by default).
// A position is split into (page, offset) with a shift and a mask. Pages are
// only ever appended, so an element never moves once stored and pointers
// returned by At stay valid until Free.
//
// # Memory Management
//
// Every new page is charged to the configured MemoryAcquirer before it is
// allocated. Free returns the whole reservation in one call. Without an
// acquirer, growth is bounded only by the Go heap.
//
// # Concurrency Model
//
// Pages performs no synchronization. The owner must serialize Append,
// Reserve and Free; concurrent At calls are safe only while no writer runs.
package arena
