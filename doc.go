// Package genarena provides a homogeneous pool allocator addressed by
// generational indices.
//
// An Arena stores values of one type T in slots and hands out Index values
// instead of pointers or bare positions. Each Index pairs a slot position
// with the generation the slot carried when the value was inserted; every
// access checks that generation against the slot, so a handle to a removed
// value is detected and inert, even after its slot has been reused.
//
// This makes an Arena a good fit for one attribute column of an
// entity-component-system (struct-of-arrays) layout: the ECS keeps Index
// values as opaque keys and one Arena per component type.
//
// # Quick Start
//
//	a, _ := genarena.New[int](genarena.WithInitialCapacity(2))
//	idx, _ := a.Insert(10)
//	v, ok := a.Get(idx)     // 10, true
//	a.Remove(idx)           // 10, true
//	_, ok = a.Get(idx)      // 0, false: stale handle
//
// # Slots and Generations
//
// A slot is either Free, linked into an intrusive free list, or Occupied.
// Insert pops the head of the free list and stamps the slot with a generation
// strictly greater than any it carried before (0 on first use). Remove
// pushes the slot back onto the head of the free list. Get, GetMut, Remove
// and Contains treat stale or unknown handles as absent; they never fail.
//
// Generations are 32-bit. A slot whose counter is exhausted is retired: it is
// never linked back into the free list, and the Insert that found it fails
// with ErrGenerationOverflow.
//
// # Growth
//
// When no slot is free, Insert grows the arena according to its GrowthPolicy
// (Doubling by default, Fixed, or NoGrowth for a fixed-capacity pool).
// Storage is segmented and never moves, so pointers returned by GetMut stay
// valid across growth. Growth can be bounded with WithMaxCapacity and shared
// memory budgets from package resource.
//
// # Concurrency
//
// Arena is a single-owner structure and not safe for concurrent use.
// SyncArena wraps it with a reader/writer lock and scoped View/Update access.
package genarena
