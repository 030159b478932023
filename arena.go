package genarena

import (
	"fmt"
	"iter"

	"github.com/hupe1980/genarena/internal/arena"
	"github.com/hupe1980/genarena/internal/conv"
)

// Arena stores values of type T in index-addressed slots and hands out
// generation-checked handles to them.
//
// An Arena is not safe for concurrent use. Readers may share it only while
// no goroutine calls Create, Destroy, Take, Reserve, Reset or Close.
type Arena[T any, G Generation, I Index] struct {
	slots *arena.Pages[slot[T, G, I]]

	firstFree I
	hasFree   bool

	live    int
	free    int
	retired int

	reused   uint64
	appended uint64

	policy  GenerationPolicy
	logger  *Logger
	metrics MetricsCollector
	closed  bool
}

// New creates an empty arena.
//
// It fails with ErrIndexTooWide if I cannot always be widened to int
// (bits(I) must be smaller than bits(uint)), and with ErrAllocationFailed if
// WithCapacity asks for more storage than the provisioner grants.
func New[T any, G Generation, I Index](opts ...Option) (*Arena[T, G, I], error) {
	if !conv.FitsNative[I]() {
		return nil, fmt.Errorf("%w: %T has %d bits, native uint has %d",
			ErrIndexTooWide, I(0), conv.BitsOf[I](), conv.NativeBits)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a := &Arena[T, G, I]{
		policy:  o.generationPolicy,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}

	pageOpts := []arena.Option{
		arena.WithGrowHook(a.onGrow),
	}
	if acq := o.resolveAcquirer(); acq != nil {
		pageOpts = append(pageOpts, arena.WithMemoryAcquirer(acq))
	}

	slots, err := arena.New[slot[T, G, I]](o.pageSize, pageOpts...)
	if err != nil {
		return nil, err
	}
	a.slots = slots

	if o.capacity > 0 {
		if err := a.Reserve(o.capacity); err != nil {
			a.slots.Free()
			return nil, err
		}
	}

	return a, nil
}

// New32 creates an arena with 32-bit indices and generations.
func New32[T any](opts ...Option) (*Arena[T, uint32, uint32], error) {
	return New[T, uint32, uint32](opts...)
}

// Create stores value and returns its handle.
//
// A previously destroyed slot is reused before new storage is appended;
// the reused slot keeps the generation it was given on destruction.
// Create fails with ErrAllocationFailed when storage cannot grow, with
// ErrIndexSpaceExhausted when I has no room for another slot, and with
// ErrClosed after Close. A failed Create leaves the arena unchanged.
func (a *Arena[T, G, I]) Create(value T) (Handle[G, I], error) {
	if a.closed {
		a.metrics.RecordCreate(false, ErrClosed)
		return Handle[G, I]{}, ErrClosed
	}

	if a.hasFree {
		idx := a.firstFree
		if uint64(idx) >= uint64(a.slots.Len()) {
			a.corrupted(&InvariantError{
				Index:  uint64(idx),
				Reason: fmt.Sprintf("free list head beyond %d slots", a.slots.Len()),
			})
		}
		s := a.slots.At(int(idx))
		if s.state != slotFree {
			a.corrupted(&InvariantError{
				Index:  uint64(idx),
				Reason: fmt.Sprintf("free list head is %s, want free", s.state),
			})
		}

		gen := s.generation
		a.firstFree, a.hasFree = s.next, s.hasNext
		*s = occupiedSlot[T, G, I](gen, value)
		a.free--
		a.live++
		a.reused++

		a.metrics.RecordCreate(true, nil)
		return Handle[G, I]{Index: idx, Generation: gen}, nil
	}

	n := a.slots.Len()
	idx, err := conv.IntToUnsigned[I](n)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrIndexSpaceExhausted, err)
		a.logger.LogAllocationFailure("create", n, err)
		a.metrics.RecordCreate(false, err)
		return Handle[G, I]{}, err
	}

	if _, err := a.slots.Append(occupiedSlot[T, G, I](0, value)); err != nil {
		err = translateError(err)
		a.logger.LogAllocationFailure("create", n, err)
		a.metrics.RecordCreate(false, err)
		return Handle[G, I]{}, err
	}
	a.live++
	a.appended++

	a.metrics.RecordCreate(false, nil)
	return Handle[G, I]{Index: idx, Generation: 0}, nil
}

// MustCreate is like Create but panics if the element cannot be stored.
func (a *Arena[T, G, I]) MustCreate(value T) Handle[G, I] {
	h, err := a.Create(value)
	if err != nil {
		panic(err)
	}
	return h
}

// lookup resolves h to its occupied slot, or nil if h is stale, foreign
// or out of range.
func (a *Arena[T, G, I]) lookup(h Handle[G, I]) *slot[T, G, I] {
	if uint64(h.Index) >= uint64(a.slots.Len()) {
		return nil
	}
	s := a.slots.At(int(h.Index))
	if s.state != slotOccupied || s.generation != h.Generation {
		return nil
	}
	return s
}

// Get returns a pointer to the element addressed by h, or nil if h is stale.
//
// The pointer stays valid while the element lives: growth never moves
// stored elements. It must not be used after the element is destroyed or
// the arena is reset or closed; the slot is zeroed and may hold a different
// element by then.
func (a *Arena[T, G, I]) Get(h Handle[G, I]) *T {
	s := a.lookup(h)
	a.metrics.RecordLookup(s != nil)
	if s == nil {
		return nil
	}
	return &s.value
}

// GetConst returns a copy of the element addressed by h.
// ok is false if h is stale.
func (a *Arena[T, G, I]) GetConst(h Handle[G, I]) (value T, ok bool) {
	s := a.lookup(h)
	a.metrics.RecordLookup(s != nil)
	if s == nil {
		return value, false
	}
	return s.value, true
}

// Contains reports whether h currently addresses a live element.
func (a *Arena[T, G, I]) Contains(h Handle[G, I]) bool {
	ok := a.lookup(h) != nil
	a.metrics.RecordLookup(ok)
	return ok
}

// Destroy removes the element addressed by h. It is a no-op if h is stale,
// out of range or was already destroyed.
//
// The element is dropped without any cleanup; releasing resources it owns
// is the caller's responsibility.
func (a *Arena[T, G, I]) Destroy(h Handle[G, I]) {
	a.remove(h)
}

// Take removes the element addressed by h and returns it.
// ok is false, and nothing happens, if h is stale.
func (a *Arena[T, G, I]) Take(h Handle[G, I]) (value T, ok bool) {
	return a.remove(h)
}

func (a *Arena[T, G, I]) remove(h Handle[G, I]) (value T, ok bool) {
	s := a.lookup(h)
	if s == nil {
		a.metrics.RecordDestroy(false)
		return value, false
	}

	value = s.value
	a.release(h.Index, s)
	a.live--

	a.metrics.RecordDestroy(true)
	return value, true
}

// release turns the occupied slot s at idx into a free (or retired) slot.
func (a *Arena[T, G, I]) release(idx I, s *slot[T, G, I]) {
	next := s.generation + 1
	if next == 0 && a.policy == GenerationRetire {
		a.logger.LogRetire(uint64(idx), uint64(s.generation))
		*s = retiredSlot[T, G, I](s.generation)
		a.retired++
		return
	}

	*s = freeSlot[T, G, I](next, a.firstFree, a.hasFree)
	a.firstFree, a.hasFree = idx, true
	a.free++
}

// Len returns the number of live elements.
func (a *Arena[T, G, I]) Len() int {
	return a.live
}

// Slots returns the number of slots ever appended, live or not.
func (a *Arena[T, G, I]) Slots() int {
	return a.slots.Len()
}

// FreeCount returns the number of slots waiting on the free list.
func (a *Arena[T, G, I]) FreeCount() int {
	return a.free
}

// Reserve grows storage so that n more elements can be appended without
// growing again. Slots on the free list are not counted.
func (a *Arena[T, G, I]) Reserve(n int) error {
	if a.closed {
		return ErrClosed
	}
	if err := a.slots.Reserve(n); err != nil {
		err = translateError(err)
		a.logger.LogAllocationFailure("reserve", a.slots.Len(), err)
		return err
	}
	return nil
}

// All returns an iterator over live elements in index order.
//
// Destroying the element currently yielded is allowed. Elements created
// during iteration may or may not be visited.
func (a *Arena[T, G, I]) All() iter.Seq2[Handle[G, I], *T] {
	return func(yield func(Handle[G, I], *T) bool) {
		for i := 0; i < a.slots.Len(); i++ {
			s := a.slots.At(i)
			if s.state != slotOccupied {
				continue
			}
			if !yield(Handle[G, I]{Index: I(i), Generation: s.generation}, &s.value) {
				return
			}
		}
	}
}

// Handles returns the handles of all live elements in index order.
func (a *Arena[T, G, I]) Handles() []Handle[G, I] {
	handles := make([]Handle[G, I], 0, a.live)
	for h := range a.All() {
		handles = append(handles, h)
	}
	return handles
}

// Reset destroys every live element. Storage is kept and every outstanding
// handle becomes stale.
func (a *Arena[T, G, I]) Reset() {
	destroyed := 0
	for i := 0; i < a.slots.Len(); i++ {
		s := a.slots.At(i)
		if s.state != slotOccupied {
			continue
		}
		a.release(I(i), s)
		destroyed++
	}
	a.live = 0
	a.logger.LogReset(destroyed, a.slots.Len())
}

// Close releases slot storage back to the provisioner.
//
// Stored values are dropped without inspection: if they own resources,
// release those before closing. After Close every handle is stale and
// Create fails with ErrClosed. Close is idempotent.
func (a *Arena[T, G, I]) Close() {
	if a.closed {
		return
	}

	stats := a.slots.Stats()
	a.logger.LogClose(a.live, stats.Len, stats.BytesReserved)

	a.slots.Free()
	a.firstFree, a.hasFree = 0, false
	a.live, a.free, a.retired = 0, 0, 0
	a.closed = true
}

func (a *Arena[T, G, I]) onGrow(pages int, bytes int64) {
	slots := a.slots.PageSize()
	a.logger.LogGrow(pages, bytes, pages*slots)
	a.metrics.RecordGrow(slots, bytes)
}

// corrupted reports a broken invariant and panics. It never returns.
func (a *Arena[T, G, I]) corrupted(err *InvariantError) {
	a.logger.LogInvariantViolation(err)
	panic(err)
}
