package genarena

import (
	"context"
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/genarena/internal/conv"
	"github.com/hupe1980/genarena/internal/slot"
)

// Arena is a pool of values of a single type T addressed by generational
// indices.
//
// Every slot is either Free (linked into the free list) or Occupied (holding
// a value and the generation it was inserted under). Handles are validated
// against the slot's current generation on every access, so a handle whose
// value has been removed resolves to nothing, even after the slot is reused.
//
// An Arena is not safe for concurrent use; see SyncArena.
type Arena[T any] struct {
	store    *slot.Store[T]
	head     uint32 // first free position, or slot.Nil
	live     int
	retired  *roaring.Bitmap
	reserved int64 // bytes acquired from the resource controller
	closed   bool
	opts     options
}

// Stats describes the occupancy of an arena.
type Stats struct {
	Len           int   // occupied slots
	Capacity      int   // total slots
	Free          int   // slots on the free list
	Retired       int   // slots retired after generation overflow
	Segments      int   // allocated storage segments
	BytesReserved int64 // segment memory reserved for this arena
}

// New creates an empty arena.
func New[T any](optFns ...Option) (*Arena[T], error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	a := &Arena[T]{
		store:   slot.New[T](o.segmentSize),
		head:    slot.Nil,
		retired: roaring.New(),
		opts:    o,
	}

	if o.initialCapacity > 0 {
		if err := a.grow(context.Background(), o.initialCapacity, false); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Insert stores value and returns its handle.
//
// If no slot is free the arena grows according to its GrowthPolicy. Insert
// fails with ErrOutOfMemory when growth is disallowed or denied, and with
// ErrGenerationOverflow when the slot it picked has exhausted its generation
// counter (that slot is retired). On failure value is discarded and the
// arena is left consistent.
func (a *Arena[T]) Insert(value T) (Index, error) {
	idx, err := a.insert(value)
	a.opts.metricsCollector.RecordInsert(err)
	return idx, err
}

func (a *Arena[T]) insert(value T) (Index, error) {
	if a.closed {
		return Index{}, ErrClosed
	}

	if a.head == slot.Nil {
		capacity := a.store.Len()
		n := a.opts.growth.Next(capacity)
		if n <= 0 {
			return Index{}, &OutOfMemoryError{Capacity: capacity, cause: errGrowthDisabled}
		}
		n = min(n, a.opts.maxCapacity-capacity)
		if n <= 0 {
			return Index{}, &OutOfMemoryError{Capacity: capacity, cause: errCapacityLimit}
		}
		if err := a.grow(context.Background(), n, false); err != nil {
			return Index{}, err
		}
	}

	pos := a.head
	s, err := a.store.At(pos)
	if err != nil || s.State != slot.Free {
		panic(fmt.Sprintf("genarena: corrupt free list at position %d", pos))
	}
	a.head = s.Next

	gen, ok := s.NextGeneration()
	if !ok {
		a.retire(pos, s)
		return Index{}, &GenerationOverflowError{Position: pos}
	}

	s.Occupy(gen, value)
	a.live++

	return Index{position: pos, generation: gen}, nil
}

func (a *Arena[T]) retire(pos uint32, s *slot.Slot[T]) {
	s.Retire()
	a.retired.Add(pos)
	a.opts.metricsCollector.RecordRetire()
	a.opts.logger.LogRetire(context.Background(), pos, s.Generation)
}

// grow adds count slots. With wait set it blocks on the resource controller
// until ctx is done; otherwise a denied request fails immediately.
func (a *Arena[T]) grow(ctx context.Context, count int, wait bool) (err error) {
	capacity := a.store.Len()
	defer func() {
		a.opts.metricsCollector.RecordGrow(count, err)
		a.opts.logger.LogGrow(ctx, capacity, count, err)
	}()

	oom := func(cause error) error {
		return &OutOfMemoryError{Capacity: capacity, Requested: count, cause: cause}
	}

	if capacity+count > a.opts.maxCapacity {
		return oom(errCapacityLimit)
	}

	rc := a.opts.controller
	bytes := int64(a.store.SegmentsFor(count)) * a.store.SegmentBytes()

	if wait {
		err = rc.AcquireGrowthContext(ctx, bytes)
	} else {
		err = rc.AcquireGrowth(bytes)
	}
	if err != nil {
		return oom(err)
	}

	head, err := a.store.Grow(count, a.head)
	if err != nil {
		rc.ReleaseMemory(bytes)
		return oom(err)
	}

	a.head = head
	a.reserved += bytes

	return nil
}

// lookup returns the slot idx refers to if idx is live.
func (a *Arena[T]) lookup(idx Index) *slot.Slot[T] {
	s, err := a.store.At(idx.position)
	if err != nil {
		// Never issued by this arena.
		return nil
	}
	if !s.Matches(idx.generation) {
		return nil
	}
	return s
}

// Remove takes the value idx refers to out of the arena. It reports false
// for stale or unknown handles, which are otherwise ignored.
func (a *Arena[T]) Remove(idx Index) (T, bool) {
	s := a.lookup(idx)
	if s == nil {
		a.opts.metricsCollector.RecordRemove(false)
		var zero T
		return zero, false
	}

	v := a.release(idx.position, s)
	a.opts.metricsCollector.RecordRemove(true)

	return v, true
}

func (a *Arena[T]) release(pos uint32, s *slot.Slot[T]) T {
	v := s.Release(a.head)
	a.head = pos
	a.live--
	return v
}

// Get returns a copy of the value idx refers to.
func (a *Arena[T]) Get(idx Index) (T, bool) {
	s := a.lookup(idx)
	if s == nil {
		var zero T
		return zero, false
	}
	return s.Value, true
}

// GetMut returns a pointer to the value idx refers to.
//
// Storage never moves, so the pointer survives growth; it must not be used
// after idx is removed, since the slot may then hold another value.
func (a *Arena[T]) GetMut(idx Index) (*T, bool) {
	s := a.lookup(idx)
	if s == nil {
		return nil, false
	}
	return &s.Value, true
}

// Contains reports whether idx refers to a live value.
func (a *Arena[T]) Contains(idx Index) bool {
	return a.lookup(idx) != nil
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// Capacity returns the total number of slots.
func (a *Arena[T]) Capacity() int {
	return a.store.Len()
}

// Reserve grows the arena so that at least additional more inserts succeed
// without growing. Unlike Insert it waits on the resource controller until
// ctx is done.
func (a *Arena[T]) Reserve(ctx context.Context, additional int) error {
	if a.closed {
		return ErrClosed
	}
	free := a.freeCount()
	if additional <= free {
		return nil
	}
	return a.grow(ctx, additional-free, true)
}

func (a *Arena[T]) freeCount() int {
	return a.store.Len() - a.live - a.retiredCount()
}

func (a *Arena[T]) retiredCount() int {
	n, _ := conv.Uint64ToInt(a.retired.GetCardinality()) // bounded by MaxCapacity
	return n
}

// Clear removes every value. Generations are kept, so every outstanding
// handle becomes stale. Capacity is unchanged. Each removed value is
// reported to the metrics collector like a Remove.
func (a *Arena[T]) Clear() {
	a.head = slot.Nil
	for pos, s := range a.store.Backward() {
		switch s.State {
		case slot.Occupied:
			s.Release(a.head)
			a.head = pos
			a.opts.metricsCollector.RecordRemove(true)
		case slot.Free:
			s.Next = a.head
			a.head = pos
		}
	}
	a.live = 0
}

// All iterates over live values in position order. Values may be modified
// through the yielded pointer; the arena must not be modified during
// iteration except through Retain.
func (a *Arena[T]) All() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for pos, s := range a.store.All() {
			if s.State != slot.Occupied {
				continue
			}
			if !yield(Index{position: pos, generation: s.Generation}, &s.Value) {
				return
			}
		}
	}
}

// Retain removes every value for which keep returns false.
func (a *Arena[T]) Retain(keep func(Index, *T) bool) {
	for pos, s := range a.store.All() {
		if s.State != slot.Occupied {
			continue
		}
		if !keep(Index{position: pos, generation: s.Generation}, &s.Value) {
			a.release(pos, s)
			a.opts.metricsCollector.RecordRemove(true)
		}
	}
}

// Retired returns the positions of slots retired after generation overflow.
func (a *Arena[T]) Retired() []uint32 {
	return a.retired.ToArray()
}

// Stats returns the current occupancy.
func (a *Arena[T]) Stats() Stats {
	return Stats{
		Len:           a.live,
		Capacity:      a.store.Len(),
		Free:          a.freeCount(),
		Retired:       a.retiredCount(),
		Segments:      a.store.Segments(),
		BytesReserved: a.reserved,
	}
}

// Close drops all storage and returns its memory to the resource controller.
// Every handle becomes stale and further inserts fail with ErrClosed.
// Close is idempotent.
func (a *Arena[T]) Close() error {
	if a.closed {
		return nil
	}

	capacity := a.store.Len()
	a.opts.controller.ReleaseMemory(a.reserved)
	a.opts.logger.LogClose(context.Background(), capacity, a.reserved)

	a.store.Reset()
	a.retired.Clear()
	a.head = slot.Nil
	a.live = 0
	a.reserved = 0
	a.closed = true

	return nil
}

func (a *Arena[T]) String() string {
	st := a.Stats()
	return fmt.Sprintf(
		"Arena{len: %d, capacity: %d, free: %d, retired: %d, segments: %d, reserved: %.2f KB}",
		st.Len, st.Capacity, st.Free, st.Retired, st.Segments, float64(st.BytesReserved)/1024,
	)
}
