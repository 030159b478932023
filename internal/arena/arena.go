package arena

import (
	"errors"
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/hupe1980/genarena/internal/conv"
)

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(amount int64) error
	ReleaseMemory(amount int64)
}

var (
	// ErrClosed is returned when growing storage that has been freed.
	ErrClosed = errors.New("arena: storage is closed")
)

const (
	// DefaultPageSize is the default number of slots per page.
	DefaultPageSize = 1024
)

// Stats tracks page storage metrics.
//
// Note on semantics:
//   - PagesAllocated: historical count of pages ever created
//   - ActivePages: pages currently held
//   - BytesReserved: bytes currently charged to the acquirer
//   - Len: positions handed out by Append
//   - Cap: positions available without growing
type Stats struct {
	PagesAllocated uint64
	ActivePages    int
	BytesReserved  int64
	Len            int
	Cap            int
}

// Option is a configuration option for Pages.
type Option func(*config)

type config struct {
	acquirer MemoryAcquirer
	onGrow   func(pages int, bytes int64)
}

// WithMemoryAcquirer sets the memory acquirer charged for every new page.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(c *config) {
		c.acquirer = acquirer
	}
}

// WithGrowHook registers fn to be called after each successful page
// allocation with the new page count and the bytes charged for the page.
func WithGrowHook(fn func(pages int, bytes int64)) Option {
	return func(c *config) {
		c.onGrow = fn
	}
}

// Pages is an append-only sequence of S stored in fixed-size pages.
type Pages[S any] struct {
	pageSize  int
	pageBits  int
	pageMask  int
	pageBytes int64

	pages [][]S
	n     int

	cfg            config
	pagesAllocated uint64
	bytesReserved  int64
	closed         bool
}

// New creates empty page storage. pageSize is rounded up to the next power
// of two; values <= 0 select DefaultPageSize. No memory is reserved until the
// first Append or Reserve.
func New[S any](pageSize int, opts ...Option) (*Pages[S], error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	// Round up to next power of 2 for shift/mask addressing
	pageBits := bits.Len(uint(pageSize - 1)) //nolint:gosec // pageSize > 0
	pageSize = 1 << pageBits

	var zero S
	pageBytes, err := conv.MulInt64(int64(pageSize), int64(unsafe.Sizeof(zero)))
	if err != nil {
		return nil, fmt.Errorf("arena: page size %d: %w", pageSize, err)
	}

	p := &Pages[S]{
		pageSize:  pageSize,
		pageBits:  pageBits,
		pageMask:  pageSize - 1,
		pageBytes: pageBytes,
	}

	for _, opt := range opts {
		opt(&p.cfg)
	}

	return p, nil
}

// PageSize returns the number of slots per page.
func (p *Pages[S]) PageSize() int {
	return p.pageSize
}

// PageBytes returns the number of bytes charged per page.
func (p *Pages[S]) PageBytes() int64 {
	return p.pageBytes
}

// Len returns the number of appended elements.
func (p *Pages[S]) Len() int {
	return p.n
}

// Cap returns the number of elements that fit without growing.
func (p *Pages[S]) Cap() int {
	return len(p.pages) << p.pageBits
}

// At returns a pointer to the element at position i.
// i must be in [0, Len()); it is not otherwise checked.
func (p *Pages[S]) At(i int) *S {
	return &p.pages[i>>p.pageBits][i&p.pageMask]
}

// Append stores v at the next position and returns that position.
// On failure the storage is left unchanged.
func (p *Pages[S]) Append(v S) (int, error) {
	if p.n == p.Cap() {
		if err := p.grow(); err != nil {
			return 0, err
		}
	}

	i := p.n
	*p.At(i) = v
	p.n++
	return i, nil
}

// Reserve grows the storage until at least n more elements fit without
// further growth. Pages acquired before a failure are kept.
func (p *Pages[S]) Reserve(n int) error {
	for p.Cap()-p.n < n {
		if err := p.grow(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pages[S]) grow() error {
	if p.closed {
		return ErrClosed
	}

	if p.cfg.acquirer != nil {
		if err := p.cfg.acquirer.AcquireMemory(p.pageBytes); err != nil {
			return fmt.Errorf("arena: acquire %d bytes for page %d: %w", p.pageBytes, len(p.pages), err)
		}
	}

	p.pages = append(p.pages, make([]S, p.pageSize))
	p.pagesAllocated++
	p.bytesReserved += p.pageBytes

	if p.cfg.onGrow != nil {
		p.cfg.onGrow(len(p.pages), p.pageBytes)
	}

	return nil
}

// Stats returns the current storage statistics.
func (p *Pages[S]) Stats() Stats {
	return Stats{
		PagesAllocated: p.pagesAllocated,
		ActivePages:    len(p.pages),
		BytesReserved:  p.bytesReserved,
		Len:            p.n,
		Cap:            p.Cap(),
	}
}

// Closed reports whether Free has been called.
func (p *Pages[S]) Closed() bool {
	return p.closed
}

// Free releases all pages and returns their reservation to the acquirer.
//
// IMPORTANT:
//  1. Elements are dropped without inspection
//  2. Pointers obtained from At become invalid
//  3. Free is idempotent; the storage cannot grow afterwards
func (p *Pages[S]) Free() {
	if p.closed {
		return
	}

	if p.cfg.acquirer != nil && p.bytesReserved > 0 {
		p.cfg.acquirer.ReleaseMemory(p.bytesReserved)
	}

	p.pages = nil
	p.n = 0
	p.bytesReserved = 0
	p.closed = true
}

func (p *Pages[S]) String() string {
	stats := p.Stats()
	return fmt.Sprintf(
		"Pages{pages: %d, len: %d, cap: %d, reserved: %.2f KB}",
		stats.ActivePages,
		stats.Len,
		stats.Cap,
		float64(stats.BytesReserved)/1024,
	)
}
