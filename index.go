package genarena

import (
	"cmp"
	"fmt"
)

// Index is a generational handle to a value stored in an Arena.
//
// It pairs a slot position with the generation stamped when the value was
// inserted. Indices are plain values: copy them freely, compare them with ==,
// and use them as map keys. A handle whose slot has since been removed or
// reused no longer resolves.
//
// The zero Index is not a sentinel; it names position 0, generation 0, which
// is the first handle a fresh arena hands out.
type Index struct {
	position   uint32
	generation uint32
}

// Position returns the slot position the index refers to.
func (i Index) Position() uint32 { return i.position }

// Generation returns the generation stamped at insertion.
func (i Index) Generation() uint32 { return i.generation }

// Compare orders indices lexicographically by (position, generation).
// It returns -1, 0 or +1.
func Compare(a, b Index) int {
	if c := cmp.Compare(a.position, b.position); c != 0 {
		return c
	}
	return cmp.Compare(a.generation, b.generation)
}

// Less reports whether i sorts before other.
func (i Index) Less(other Index) bool {
	return Compare(i, other) < 0
}

// Uint64 packs the index into a single integer, position in the high half.
// Packed values sort in the same order as Compare.
func (i Index) Uint64() uint64 {
	return uint64(i.position)<<32 | uint64(i.generation)
}

// IndexFromUint64 unpacks a value produced by Index.Uint64.
func IndexFromUint64(v uint64) Index {
	return Index{
		position:   uint32(v >> 32), //nolint:gosec // high half
		generation: uint32(v),       //nolint:gosec // low half
	}
}

func (i Index) String() string {
	return fmt.Sprintf("%d@%d", i.position, i.generation)
}
