package genarena

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is returned when an insert needs capacity that cannot be provided.
	ErrOutOfMemory = errors.New("genarena: out of memory")
	// ErrGenerationOverflow is returned when a slot's generation counter is exhausted.
	ErrGenerationOverflow = errors.New("genarena: generation overflow")
	// ErrClosed is returned when inserting into a closed arena.
	ErrClosed = errors.New("genarena: arena is closed")
	// ErrInvalidOption is returned by New for inconsistent configuration.
	ErrInvalidOption = errors.New("genarena: invalid option")

	errGrowthDisabled = errors.New("growth disabled by policy")
	errCapacityLimit  = errors.New("max capacity reached")
)

// OutOfMemoryError indicates that the arena could not grow.
//
// The arena is left unchanged; the caller may retry later.
// The original underlying error can be accessed via errors.Unwrap.
type OutOfMemoryError struct {
	Capacity  int // capacity at the time of the request
	Requested int // additional slots requested (0 if the policy allowed none)
	cause     error
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("genarena: out of memory: capacity %d, requested %d more: %v", e.Capacity, e.Requested, e.cause)
}

func (e *OutOfMemoryError) Unwrap() error { return e.cause }

// Is reports ErrOutOfMemory as a match.
func (e *OutOfMemoryError) Is(target error) bool { return target == ErrOutOfMemory }

// GenerationOverflowError indicates that the slot at Position exhausted its
// generation counter. The slot has been retired and is never reused; the
// value passed to Insert was discarded.
type GenerationOverflowError struct {
	Position uint32
}

func (e *GenerationOverflowError) Error() string {
	return fmt.Sprintf("genarena: generation overflow at position %d (slot retired)", e.Position)
}

// Is reports ErrGenerationOverflow as a match.
func (e *GenerationOverflowError) Is(target error) bool { return target == ErrGenerationOverflow }
