package genarena

import (
	"context"
	"sync"
)

// SyncArena is an Arena guarded by a reader/writer lock.
//
// Values are only reachable inside View and Update callbacks, which hold the
// lock for the duration of the call: many View calls may run at once, while
// Update and every mutating method are exclusive.
type SyncArena[T any] struct {
	mu    sync.RWMutex
	arena *Arena[T]
}

// NewSync creates an empty SyncArena.
func NewSync[T any](optFns ...Option) (*SyncArena[T], error) {
	a, err := New[T](optFns...)
	if err != nil {
		return nil, err
	}
	return &SyncArena[T]{arena: a}, nil
}

// Insert stores value and returns its handle. See Arena.Insert.
func (s *SyncArena[T]) Insert(value T) (Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Insert(value)
}

// Remove takes the value idx refers to out of the arena.
func (s *SyncArena[T]) Remove(idx Index) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Remove(idx)
}

// Get returns a copy of the value idx refers to.
func (s *SyncArena[T]) Get(idx Index) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.arena.Get(idx)
}

// View calls fn with shared access to the value idx refers to. fn must not
// modify the value or retain the pointer. It reports whether idx was live.
func (s *SyncArena[T]) View(idx Index, fn func(*T)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.arena.GetMut(idx)
	if !ok {
		return false
	}
	fn(v)
	return true
}

// Update calls fn with exclusive access to the value idx refers to. fn must
// not retain the pointer. It reports whether idx was live.
func (s *SyncArena[T]) Update(idx Index, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.arena.GetMut(idx)
	if !ok {
		return false
	}
	fn(v)
	return true
}

// Range calls fn for every live value in position order with shared access,
// stopping early when fn returns false. fn must not modify the values, retain
// the pointers, or call back into s.
func (s *SyncArena[T]) Range(fn func(Index, *T) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for idx, v := range s.arena.All() {
		if !fn(idx, v) {
			return
		}
	}
}

// Retain removes every value for which keep returns false. keep runs with
// exclusive access and may modify the values it keeps.
func (s *SyncArena[T]) Retain(keep func(Index, *T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arena.Retain(keep)
}

// Retired returns the positions of slots retired after generation overflow.
func (s *SyncArena[T]) Retired() []uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.arena.Retired()
}

// Contains reports whether idx refers to a live value.
func (s *SyncArena[T]) Contains(idx Index) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.arena.Contains(idx)
}

// Len returns the number of live values.
func (s *SyncArena[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.arena.Len()
}

// Capacity returns the total number of slots.
func (s *SyncArena[T]) Capacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.arena.Capacity()
}

// Reserve grows the arena ahead of time. See Arena.Reserve.
// The write lock is held while waiting on the resource controller.
func (s *SyncArena[T]) Reserve(ctx context.Context, additional int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Reserve(ctx, additional)
}

// Clear removes every value.
func (s *SyncArena[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arena.Clear()
}

// Stats returns the current occupancy.
func (s *SyncArena[T]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.arena.Stats()
}

// Close releases the arena. See Arena.Close.
func (s *SyncArena[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Close()
}
