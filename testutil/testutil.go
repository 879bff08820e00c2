package testutil

import (
	"math/rand"
	"sync"
)

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

// OpKind is the kind of a generated arena operation.
type OpKind int

const (
	OpInsert OpKind = iota
	OpRemove
	OpGet
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpGet:
		return "get"
	default:
		return "unknown"
	}
}

// Op is a single generated operation.
//
// Pick selects the target among previously issued handles (Pick modulo the
// number of handles), so removes and gets hit live and stale handles alike.
type Op struct {
	Kind  OpKind
	Pick  int
	Value int
}

// OpMix weights the operation kinds.
type OpMix struct {
	Insert int
	Remove int
	Get    int
}

// DefaultOpMix slightly favors inserts so arenas grow over a run.
var DefaultOpMix = OpMix{Insert: 5, Remove: 3, Get: 2}

// Ops generates n operations distributed according to mix.
func (r *RNG) Ops(n int, mix OpMix) []Op {
	total := mix.Insert + mix.Remove + mix.Get
	if total <= 0 || n <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Op, n)
	for i := range ops {
		w := r.rand.Intn(total)
		switch {
		case w < mix.Insert:
			ops[i].Kind = OpInsert
		case w < mix.Insert+mix.Remove:
			ops[i].Kind = OpRemove
		default:
			ops[i].Kind = OpGet
		}
		ops[i].Pick = r.rand.Int()
		ops[i].Value = r.rand.Int()
	}
	return ops
}
