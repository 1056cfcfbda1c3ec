package diffevol

import "math"

// Every search dimension is normalized to [ValueMin, ValueMax]. Hosts map a
// value to real units with an affine per-channel transform.
const (
	ValueMin = 0.0
	ValueMax = 100.0
)

const (
	// The corner vectors of the first generation sit slightly inside the value
	// range, asymmetrically, so no start is a mirror image of another.
	minBoundaryShrink = 0.12
	maxBoundaryShrink = 0.08

	// minPopulation is the smallest population DE/rand/1 can draw from:
	// the target slot plus three distinct donors.
	minPopulation = 4

	// keepInRangeAttempts bounds the redraws of an out-of-range vector before
	// falling back to a uniformly random one.
	keepInRangeAttempts = 20

	// rangeTolerance is the fraction of the value range a drawn vector may
	// exceed [ValueMin, ValueMax] by and still be accepted.
	rangeTolerance = 0.05

	// validationSpread is the fraction of the value range used as the
	// perturbation half-width when validation separates duplicates.
	validationSpread = 0.2
)

const valueSpan = ValueMax - ValueMin

// grid describes how vector components are rounded.
type grid struct {
	decimals int
}

// step returns the spacing between representable values.
func (g grid) step() float64 {
	if g.decimals >= 0 {
		return math.Pow(10, -float64(g.decimals))
	}
	return float64(-g.decimals + 1)
}

// round rounds v to the grid.
func (g grid) round(v float64) float64 {
	if g.decimals >= 0 {
		p := math.Pow(10, float64(g.decimals))
		return math.Round(v*p) / p
	}
	s := g.step()
	return math.Round(v/s) * s
}

// min returns the smallest grid value inside the value range.
func (g grid) min() float64 {
	v := g.round(ValueMin)
	if v < ValueMin {
		v += g.step()
	}
	return v
}

// max returns the largest grid value inside the value range.
func (g grid) max() float64 {
	v := g.round(ValueMax)
	if v > ValueMax {
		v -= g.step()
	}
	return v
}

// settle clamps v into the value range and rounds it to a grid value that is
// still inside the range.
func (g grid) settle(v float64) float64 {
	v = g.round(clamp(v))
	switch {
	case v > ValueMax:
		return g.max()
	case v < ValueMin:
		return g.min()
	}
	return v
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, ValueMin), ValueMax)
}

// inTolerance reports whether v lies in the value range widened by rangeTolerance.
func inTolerance(v float64) bool {
	tol := rangeTolerance * valueSpan
	return v >= ValueMin-tol && v <= ValueMax+tol
}
