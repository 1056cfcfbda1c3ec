package diffevol

import (
	"fmt"
	"math/rand/v2"

	"github.com/hupe1980/odorsearch/matrix"
)

// CreateInitialVectors builds the first generation for varCount dimensions as
// a varCount x N matrix, one candidate per column.
//
// The columns are every distinct arrangement of two near-boundary values
// (one close to ValueMin, one close to ValueMax) followed by the center of the
// range. Populations smaller than four are padded with random columns. All
// values are rounded to decimals (see Parameters.Decimals).
func CreateInitialVectors(varCount, decimals int, rng *rand.Rand) (*matrix.Matrix[float64], error) {
	if varCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVarCount, varCount)
	}

	center := (ValueMax + ValueMin) / 2
	low := ValueMin + minBoundaryShrink*valueSpan
	high := ValueMax - maxBoundaryShrink*valueSpan

	corners := matrix.New[float64]()
	for k := varCount; k >= 0; k-- {
		row := make([]float64, varCount)
		for i := range row {
			if i < k {
				row[i] = low
			} else {
				row[i] = high
			}
		}
		perms, err := matrix.Permutate(matrix.FromRow(row))
		if err != nil {
			return nil, err
		}
		// Collapse each k before stacking; k copies of the same value
		// repeat every row k!(varCount-k)! times.
		corners, err = matrix.StackRows(corners, perms.RemoveDuplicates(matrix.ByRows))
		if err != nil {
			return nil, err
		}
	}

	vectors, err := matrix.StackColumns(
		corners.RemoveDuplicates(matrix.ByRows).Transpose(),
		matrix.Filled(varCount, 1, center),
	)
	if err != nil {
		return nil, err
	}

	g := grid{decimals: decimals}
	for vectors.Cols() < minPopulation {
		vectors, err = matrix.StackColumns(vectors, randomVector(rng, varCount, g))
		if err != nil {
			return nil, err
		}
	}

	return vectors.Apply(g.round), nil
}

// randomVector returns a column of n values drawn uniformly from the grid's
// in-range bounds.
func randomVector(rng *rand.Rand, n int, g grid) *matrix.Matrix[float64] {
	return randomMatrix(rng, n, 1, g)
}

func randomMatrix(rng *rand.Rand, rows, cols int, g grid) *matrix.Matrix[float64] {
	lo, hi := g.min(), g.max()
	return matrix.Generate(rows, cols, func(int, int) float64 {
		return g.round(lo + rng.Float64()*(hi-lo))
	})
}
