package simrig

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

var (
	// ErrNoSignatures is returned by New without channel signatures.
	ErrNoSignatures = errors.New("simrig: no signatures")

	// ErrRaggedSignatures is returned when signatures differ in length.
	ErrRaggedSignatures = errors.New("simrig: signatures differ in length")

	// ErrFlowCount is returned when the number of flows differs from the
	// number of channels.
	ErrFlowCount = errors.New("simrig: flow count mismatch")
)

// Options configures a simulated rig.
type Options struct {
	// Noise is the standard deviation of Gaussian noise added to every sensor.
	Noise float64

	// Seed seeds the noise source.
	Seed uint64

	// Delay simulates the settling time of a measurement.
	Delay time.Duration

	// Baseline is the sensor reading of clean air. Nil means zero.
	Baseline []float64
}

// DefaultOptions is a noise-free rig without delay.
var DefaultOptions = Options{}

// Rig is a simulated linear mixing rig. It is safe for concurrent use.
type Rig struct {
	mu           sync.Mutex
	signatures   [][]float64
	baseline     []float64
	noise        float64
	delay        time.Duration
	rng          *rand.Rand
	measurements int
}

// New creates a rig from one signature per channel.
func New(signatures [][]float64, optFns ...func(o *Options)) (*Rig, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if len(signatures) == 0 || len(signatures[0]) == 0 {
		return nil, ErrNoSignatures
	}
	sensors := len(signatures[0])

	sigs := make([][]float64, len(signatures))
	for i, sig := range signatures {
		if len(sig) != sensors {
			return nil, fmt.Errorf("%w: channel %d has %d sensors, want %d", ErrRaggedSignatures, i, len(sig), sensors)
		}
		sigs[i] = slices.Clone(sig)
	}

	baseline := make([]float64, sensors)
	if opts.Baseline != nil {
		if len(opts.Baseline) != sensors {
			return nil, fmt.Errorf("%w: baseline has %d sensors, want %d", ErrRaggedSignatures, len(opts.Baseline), sensors)
		}
		copy(baseline, opts.Baseline)
	}

	return &Rig{
		signatures: sigs,
		baseline:   baseline,
		noise:      opts.Noise,
		delay:      opts.Delay,
		rng:        rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
	}, nil
}

// Channels returns the number of channels.
func (r *Rig) Channels() int { return len(r.signatures) }

// Sensors returns the number of sensor values per measurement.
func (r *Rig) Sensors() int { return len(r.baseline) }

// Measurements returns how many measurements were taken.
func (r *Rig) Measurements() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.measurements
}

// Response returns the noise-free measurement of flows.
func (r *Rig) Response(flows []float64) ([]float64, error) {
	if len(flows) != len(r.signatures) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrFlowCount, len(r.signatures), len(flows))
	}

	out := slices.Clone(r.baseline)
	for i, flow := range flows {
		for k, s := range r.signatures[i] {
			out[k] += flow * s
		}
	}
	return out, nil
}

// Measure waits for the configured delay and returns the noisy response.
func (r *Rig) Measure(ctx context.Context, flows []float64) ([]float64, error) {
	out, err := r.Response(flows)
	if err != nil {
		return nil, err
	}

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.noise > 0 {
		for k := range out {
			out[k] += r.rng.NormFloat64() * r.noise
		}
	}
	r.measurements++
	return out, nil
}

// RandomSignatures generates non-negative channel signatures where every
// channel has one dominant sensor.
func RandomSignatures(channels, sensors int, seed uint64) [][]float64 {
	if channels <= 0 || sensors <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	sigs := make([][]float64, channels)
	for i := range sigs {
		sig := make([]float64, sensors)
		for k := range sig {
			sig[k] = 0.1 * rng.Float64()
		}
		sig[i%sensors]++
		sigs[i] = sig
	}
	return sigs
}
