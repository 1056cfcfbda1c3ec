package diffevol

import "math/rand/v2"

type options struct {
	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*options)

// WithSeed makes the engine's random decisions reproducible.
// The same seed, parameters and measurements yield the same candidates.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // search randomness, not security
	}
}

// WithRand sets the random source. A nil source keeps the default.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}
