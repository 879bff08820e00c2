package genarena

// DefaultMinGrowth is the smallest step taken by Doubling.
const DefaultMinGrowth = 8

// GrowthPolicy decides how many slots to add when an insert finds no free slot.
type GrowthPolicy interface {
	// Next returns the number of slots to add to a store holding capacity
	// slots. A result <= 0 disallows growth.
	Next(capacity int) int
}

// Doubling grows by the current capacity, but at least Min slots
// (DefaultMinGrowth if Min <= 0). It gives amortized O(1) inserts.
type Doubling struct {
	Min int
}

// Next implements GrowthPolicy.
func (d Doubling) Next(capacity int) int {
	m := d.Min
	if m <= 0 {
		m = DefaultMinGrowth
	}
	return max(capacity, m)
}

// Fixed grows by Step slots at a time.
type Fixed struct {
	Step int
}

// Next implements GrowthPolicy.
func (f Fixed) Next(int) int { return f.Step }

// NoGrowth never grows: the arena keeps its initial capacity and inserts
// into a full arena fail with ErrOutOfMemory.
type NoGrowth struct{}

// Next implements GrowthPolicy.
func (NoGrowth) Next(int) int { return 0 }
