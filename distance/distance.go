package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hupe1980/odorsearch/matrix"
)

var (
	// ErrUnsupportedKernel is returned for kernels without an implementation.
	ErrUnsupportedKernel = errors.New("unsupported kernel")

	// ErrDimensionMismatch is returned when target and measurement lengths differ.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Kernel represents the distance function used to compare measurements.
type Kernel int

const (
	KernelEuclidean Kernel = iota
	KernelManhattan
	KernelCosine
)

func (k Kernel) String() string {
	switch k {
	case KernelEuclidean:
		return "Euclidean"
	case KernelManhattan:
		return "Manhattan"
	case KernelCosine:
		return "Cosine"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kernel) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kernel) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "euclidean":
		*k = KernelEuclidean
	case "manhattan":
		*k = KernelManhattan
	case "cosine":
		*k = KernelCosine
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKernel, text)
	}
	return nil
}

// Func computes the distance between a target and a measurement.
type Func func(target, measurement []float64) (float64, error)

// Provider returns the distance function for the given kernel.
func Provider(k Kernel) (Func, error) {
	switch k {
	case KernelEuclidean:
		return Euclidean, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKernel, k)
	}
}

// Euclidean returns sqrt(mean((target - measurement)^2)).
// Both slices must have the same length; empty slices are at distance 0.
func Euclidean(target, measurement []float64) (float64, error) {
	if len(target) != len(measurement) {
		return 0, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, len(target), len(measurement))
	}
	diff, err := matrix.FromRow(target).Sub(matrix.FromRow(measurement))
	if err != nil {
		return 0, err
	}
	return math.Sqrt(diff.Pow(2).Mean()), nil
}
