package slot

import "math"

// Nil marks the absence of a position (the tail of the free list).
const Nil = math.MaxUint32

// MaxGeneration is the largest generation a slot can carry.
const MaxGeneration = math.MaxUint32

// State is the lifecycle state of a slot.
type State uint8

const (
	// Free slots are linked into the free list.
	Free State = iota
	// Occupied slots hold a value and the generation stamped at insertion.
	Occupied
	// Retired slots exhausted their generation counter and are never reused.
	Retired
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case Occupied:
		return "occupied"
	case Retired:
		return "retired"
	default:
		return "unknown"
	}
}

// Slot is a single storage cell.
//
// Generation keeps the generation of the most recent occupation even while
// the slot is Free, so the next occupation can be stamped strictly higher.
type Slot[T any] struct {
	Value      T
	Next       uint32 // next free position or Nil; meaningful only when Free
	Generation uint32
	Used       bool // occupied at least once
	State      State
}

// NextGeneration returns the generation the next occupation must carry.
// It reports false when the counter is exhausted.
func (s *Slot[T]) NextGeneration() (uint32, bool) {
	if !s.Used {
		return 0, true
	}
	if s.Generation == MaxGeneration {
		return 0, false
	}
	return s.Generation + 1, true
}

// Occupy stores value under generation gen.
func (s *Slot[T]) Occupy(gen uint32, value T) {
	s.Value = value
	s.Generation = gen
	s.Used = true
	s.State = Occupied
	s.Next = Nil
}

// Release takes the value out of an occupied slot and links the slot in front
// of next.
func (s *Slot[T]) Release(next uint32) T {
	v := s.Value
	var zero T
	s.Value = zero
	s.State = Free
	s.Next = next
	return v
}

// Retire takes the slot out of circulation for good.
func (s *Slot[T]) Retire() {
	var zero T
	s.Value = zero
	s.State = Retired
	s.Next = Nil
}

// Matches reports whether the slot is occupied under generation gen.
func (s *Slot[T]) Matches(gen uint32) bool {
	return s.State == Occupied && s.Generation == gen
}
