// Package testutil provides testing utilities for odor searches.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random source for generating channel
// signatures, targets and recipes, plus small assertion helpers.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	flows := rng.UniformRange(4, 0, 20)      // one recipe
//	sigs := rng.Signatures(4, 8)             // 4 channels, 8 sensors
//	noisy := rng.Jitter(target, 0.05)        // Gaussian noise
package testutil
