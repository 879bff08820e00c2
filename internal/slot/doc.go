// Package slot implements the slot store that backs a generational arena.
//
// # Layout
//
// Slots live in fixed-size segments (a power of two, 256 slots by default).
// Segments are allocated on growth and never moved or copied afterwards, so a
// pointer to a slot's value stays valid for the lifetime of the store:
//
//	position = segment<<segmentBits | offset
//
// # Free List
//
// Free slots form an intrusive singly linked list threaded through the store:
// each Free slot carries the position of the next Free slot, or Nil at the
// tail. The head of the list is owned by the caller. Grow links the new slots
// in growth order and attaches the caller's previous head behind the last one,
// so new capacity is always consumed first.
package slot
