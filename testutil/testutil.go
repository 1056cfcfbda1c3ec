package testutil

import (
	"math"
	"math/rand/v2"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformRange returns n values in range [minVal, maxVal).
func (r *RNG) UniformRange(n int, minVal, maxVal float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	out := make([]float64, n)
	for i := range out {
		out[i] = minVal + r.rand.Float64()*span
	}
	return out
}

// UniformVectors generates num vectors with values in range [minVal, maxVal).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num, dimensions int, minVal, maxVal float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = minVal + r.rand.Float64()*span
		}
		vectors[i] = vec
	}

	return vectors
}

// Signatures generates a sensor response per unit flow for each channel.
// Responses are non-negative and each channel has one dominant sensor, so
// channels are distinguishable.
func (r *RNG) Signatures(channels, sensors int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, channels*sensors)
	sigs := make([][]float64, channels)

	for i := range channels {
		sig := data[i*sensors : (i+1)*sensors]
		for j := range sig {
			sig[j] = 0.1 * r.rand.Float64()
		}
		sig[i%sensors] += 1
		sigs[i] = sig
	}

	return sigs
}

// Jitter returns a copy of values with Gaussian noise of the given standard
// deviation added to every element.
func (r *RNG) Jitter(values []float64, stddev float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v + r.rand.NormFloat64()*stddev
	}
	return out
}

// InRange reports whether every value lies in [minVal, maxVal].
func InRange(values []float64, minVal, maxVal float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || v < minVal || v > maxVal {
			return false
		}
	}
	return true
}

// RMS returns the root mean square difference of two equally long slices.
func RMS(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(a)))
}
