// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between Go's platform-dependent int and the fixed-width
// types used for slot positions and capacities.
//
// For conversions that are provably safe by domain constraints (e.g., positions
// already checked against the store length), use direct type casts instead.
package conv
