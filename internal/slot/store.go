package slot

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/bits"
	"unsafe"

	"github.com/hupe1980/genarena/internal/conv"
)

const (
	// DefaultSegmentSize is the default number of slots per segment.
	DefaultSegmentSize = 256
	// MaxSegmentSize caps the segment size (64Ki slots).
	MaxSegmentSize = 1 << 16
	// MaxLen is the maximum number of slots a store can hold.
	MaxLen = math.MaxInt32
)

var (
	// ErrOutOfBounds is returned when a position is not below the store length.
	ErrOutOfBounds = errors.New("slot: position out of bounds")
	// ErrCapacityExceeded is returned when growth would exceed MaxLen.
	ErrCapacityExceeded = errors.New("slot: capacity exceeded")
)

// Store is an ordered, index-addressable sequence of slots.
// It is not safe for concurrent use.
type Store[T any] struct {
	segments    [][]Slot[T]
	segmentBits int
	segmentMask uint32
	n           uint32
}

// New creates an empty store. segmentSize is rounded up to a power of two;
// values <= 0 select DefaultSegmentSize.
func New[T any](segmentSize int) *Store[T] {
	if segmentSize <= 0 {
		segmentSize = DefaultSegmentSize
	}
	if segmentSize > MaxSegmentSize {
		segmentSize = MaxSegmentSize
	}

	segmentBits := bits.Len(uint(segmentSize - 1)) //nolint:gosec // segmentSize > 0

	return &Store[T]{
		segmentBits: segmentBits,
		segmentMask: 1<<segmentBits - 1,
	}
}

// Len returns the number of slots in the store.
func (s *Store[T]) Len() int {
	return int(s.n)
}

// SegmentSize returns the number of slots per segment.
func (s *Store[T]) SegmentSize() int {
	return 1 << s.segmentBits
}

// Segments returns the number of allocated segments.
func (s *Store[T]) Segments() int {
	return len(s.segments)
}

// SegmentBytes returns the in-memory size of one segment.
func (s *Store[T]) SegmentBytes() int64 {
	var zero Slot[T]
	return int64(unsafe.Sizeof(zero)) * int64(s.SegmentSize())
}

// SegmentsFor returns how many new segments Grow(count) would allocate.
func (s *Store[T]) SegmentsFor(count int) int {
	if count <= 0 {
		return 0
	}
	size := s.SegmentSize()
	need := (s.Len() + count + size - 1) / size
	return max(need-len(s.segments), 0)
}

// Grow appends count Free slots and threads them onto the front of the free
// list whose current head is head. It returns the new head.
func (s *Store[T]) Grow(count int, head uint32) (uint32, error) {
	if count <= 0 {
		return head, nil
	}
	if s.Len()+count > MaxLen {
		return head, fmt.Errorf("%w: %d + %d slots", ErrCapacityExceeded, s.n, count)
	}
	c, err := conv.IntToUint32(count)
	if err != nil {
		return head, err
	}

	for range s.SegmentsFor(count) {
		s.segments = append(s.segments, make([]Slot[T], s.SegmentSize()))
	}

	first := s.n
	last := first + c - 1
	for pos := first; pos <= last; pos++ {
		next := pos + 1
		if pos == last {
			next = head
		}
		s.segments[pos>>s.segmentBits][pos&s.segmentMask] = Slot[T]{Next: next, State: Free}
	}
	s.n += c

	return first, nil
}

// At returns the slot at pos.
func (s *Store[T]) At(pos uint32) (*Slot[T], error) {
	if pos >= s.n {
		return nil, fmt.Errorf("%w: %d >= %d", ErrOutOfBounds, pos, s.n)
	}
	return &s.segments[pos>>s.segmentBits][pos&s.segmentMask], nil
}

// All iterates over every slot in position order.
func (s *Store[T]) All() iter.Seq2[uint32, *Slot[T]] {
	return func(yield func(uint32, *Slot[T]) bool) {
		for pos := uint32(0); pos < s.n; pos++ {
			if !yield(pos, &s.segments[pos>>s.segmentBits][pos&s.segmentMask]) {
				return
			}
		}
	}
}

// Backward iterates over every slot in reverse position order.
func (s *Store[T]) Backward() iter.Seq2[uint32, *Slot[T]] {
	return func(yield func(uint32, *Slot[T]) bool) {
		for pos := s.n; pos > 0; pos-- {
			p := pos - 1
			if !yield(p, &s.segments[p>>s.segmentBits][p&s.segmentMask]) {
				return
			}
		}
	}
}

// Reset drops every segment.
func (s *Store[T]) Reset() {
	s.segments = nil
	s.n = 0
}
