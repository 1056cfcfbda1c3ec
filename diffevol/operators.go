package diffevol

import (
	"slices"

	"github.com/hupe1980/odorsearch/matrix"
)

// mutate returns one donor vector per population column using DE/rand/1:
// donor = b + F*(c - d), where b, c and d are distinct members other than the
// column itself.
func (e *Engine) mutate(population *matrix.Matrix[float64]) (*matrix.Matrix[float64], error) {
	donors := population.Copy()
	n := population.Cols()

	for col := 0; col < n; col++ {
		donor, err := e.keepInRange(population.Rows(), 1, func() (*matrix.Matrix[float64], error) {
			members := e.pickOthers(col, n, 3)

			b, err := population.Column(members[0])
			if err != nil {
				return nil, err
			}
			c, err := population.Column(members[1])
			if err != nil {
				return nil, err
			}
			d, err := population.Column(members[2])
			if err != nil {
				return nil, err
			}

			diff, err := c.Sub(d)
			if err != nil {
				return nil, err
			}
			return b.Add(diff.MulScalar(e.params.MutationFactor))
		})
		if err != nil {
			return nil, err
		}
		if err := donors.ReplaceColumn(col, donor); err != nil {
			return nil, err
		}
	}

	return donors, nil
}

// pickOthers returns k distinct indices in [0, n) other than exclude.
func (e *Engine) pickOthers(exclude, n, k int) []int {
	idx := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != exclude {
			idx = append(idx, i)
		}
	}
	e.rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx[:k]
}

// crossover mixes population and donors binomially. Every column inherits the
// donor value at one forced random row, and at every other row with
// probability CrossoverRate.
func (e *Engine) crossover(population, donors *matrix.Matrix[float64]) (*matrix.Matrix[float64], error) {
	trial := population.Copy()
	rows, cols := population.Rows(), population.Cols()

	for c := 0; c < cols; c++ {
		forced := e.rng.IntN(rows)
		for r := 0; r < rows; r++ {
			if r != forced && e.rng.Float64() > e.params.CrossoverRate {
				continue
			}
			v, err := donors.At(r, c)
			if err != nil {
				return nil, err
			}
			if err := trial.Set(r, c, v); err != nil {
				return nil, err
			}
		}
	}

	return trial, nil
}

// keepInRange calls draw until it returns a vector whose components all lie
// within the tolerant value range. After keepInRangeAttempts failed draws it
// falls back to a uniformly random rows x cols matrix.
func (e *Engine) keepInRange(rows, cols int, draw func() (*matrix.Matrix[float64], error)) (*matrix.Matrix[float64], error) {
	for attempt := 0; attempt < keepInRangeAttempts; attempt++ {
		v, err := draw()
		if err != nil {
			return nil, err
		}
		if v.All(inTolerance) {
			return v, nil
		}
	}
	e.fallbacks++
	return randomMatrix(e.rng, rows, cols, e.grid), nil
}

// perturb returns v plus independent uniform noise in [-delta, delta] per
// component, redrawn under the keepInRange policy and settled onto the grid.
func (e *Engine) perturb(v *matrix.Matrix[float64]) (*matrix.Matrix[float64], error) {
	delta := validationSpread * valueSpan
	out, err := e.keepInRange(v.Rows(), v.Cols(), func() (*matrix.Matrix[float64], error) {
		return v.Apply(func(x float64) float64 {
			return x + (e.rng.Float64()*2-1)*delta
		}), nil
	})
	if err != nil {
		return nil, err
	}
	return out.Apply(e.grid.settle), nil
}

// validate separates candidates that would waste a physical trial: a column
// identical to an earlier column is perturbed, and so is every row whose value
// is the same across all columns. It repeats until neither occurs or the
// attempt budget is spent.
func (e *Engine) validate(vectors *matrix.Matrix[float64]) (*matrix.Matrix[float64], error) {
	out := vectors.Copy()

	for pass := 0; pass < keepInRangeAttempts; pass++ {
		changed := false

		for j := 1; j < out.Cols(); j++ {
			dup, err := hasEarlierDuplicate(out, j)
			if err != nil {
				return nil, err
			}
			if !dup {
				continue
			}
			col, err := out.Column(j)
			if err != nil {
				return nil, err
			}
			col, err = e.perturb(col)
			if err != nil {
				return nil, err
			}
			if err := out.ReplaceColumn(j, col); err != nil {
				return nil, err
			}
			changed = true
		}

		if out.Cols() > 1 {
			for r := 0; r < out.Rows(); r++ {
				row, err := out.Row(r)
				if err != nil {
					return nil, err
				}
				first := row.Values()[0]
				if !row.All(func(v float64) bool { return v == first }) {
					continue
				}
				row, err = e.perturb(row)
				if err != nil {
					return nil, err
				}
				if err := out.ReplaceRow(r, row); err != nil {
					return nil, err
				}
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return out, nil
}

// hasEarlierDuplicate reports whether column j equals any column before it.
func hasEarlierDuplicate(m *matrix.Matrix[float64], j int) (bool, error) {
	cj, err := m.Column(j)
	if err != nil {
		return false, err
	}
	for i := 0; i < j; i++ {
		ci, err := m.Column(i)
		if err != nil {
			return false, err
		}
		if ci.Equals(cj) {
			return true, nil
		}
	}
	return false, nil
}

// clampVector returns a copy of v with every component clamped into the value range.
func clampVector(v []float64) []float64 {
	out := slices.Clone(v)
	for i, x := range out {
		out[i] = clamp(x)
	}
	return out
}
