package testutil

import (
	"math/rand"
	"sync"
)

// OpKind identifies a randomly generated arena operation.
type OpKind int

const (
	OpCreate OpKind = iota
	OpDestroy
	OpGet
	OpDestroyStale
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpDestroy:
		return "destroy"
	case OpGet:
		return "get"
	case OpDestroyStale:
		return "destroy-stale"
	default:
		return "unknown"
	}
}

// Op is one step of a generated workload. Pick selects a target among the
// handles the test currently tracks (live or stale, depending on Kind);
// tests reduce it modulo their own slice length.
type Op struct {
	Kind  OpKind
	Pick  int
	Value uint64
}

// OpMix weights the operation kinds of a workload. Zero weights disable a
// kind; an all-zero mix yields only creates.
type OpMix struct {
	Create       int
	Destroy      int
	Get          int
	DestroyStale int
}

// DefaultOpMix is a churn-heavy mix that keeps the free list busy.
var DefaultOpMix = OpMix{Create: 4, Destroy: 3, Get: 4, DestroyStale: 1}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Ops generates n operations drawn from mix.
func (r *RNG) Ops(n int, mix OpMix) []Op {
	total := mix.Create + mix.Destroy + mix.Get + mix.DestroyStale
	if total <= 0 {
		mix, total = OpMix{Create: 1}, 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Op, n)
	for i := range ops {
		w := r.rand.Intn(total)
		var kind OpKind
		switch {
		case w < mix.Create:
			kind = OpCreate
		case w < mix.Create+mix.Destroy:
			kind = OpDestroy
		case w < mix.Create+mix.Destroy+mix.Get:
			kind = OpGet
		default:
			kind = OpDestroyStale
		}
		ops[i] = Op{
			Kind:  kind,
			Pick:  r.rand.Intn(1 << 30),
			Value: r.rand.Uint64(),
		}
	}
	return ops
}

// Shuffle returns a pseudo-random permutation of [0,n).
func (r *RNG) Shuffle(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}
