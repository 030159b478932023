// Package testutil provides testing utilities for genarena.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, goroutine-safe RNG and generators for randomized
// create/destroy/get workloads used by model-based tests.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	for _, op := range rng.Ops(10_000, testutil.DefaultOpMix) {
//	    switch op.Kind {
//	    case testutil.OpCreate:
//	        // ...
//	    }
//	}
//
// Re-running with the same seed reproduces the same workload.
package testutil
