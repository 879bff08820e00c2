// Package testutil provides testing utilities for genarena.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for randomized
// operation sequences.
//
// # Operation Sequences
//
//	rng := testutil.NewRNG(seed)
//	for _, op := range rng.Ops(10_000, testutil.DefaultOpMix) {
//	    switch op.Kind {
//	    case testutil.OpInsert:
//	    case testutil.OpRemove:
//	    case testutil.OpGet:
//	    }
//	}
package testutil
