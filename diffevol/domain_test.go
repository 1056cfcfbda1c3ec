package diffevol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid(t *testing.T) {
	tests := []struct {
		name     string
		decimals int
		step     float64
		min, max float64
		round    map[float64]float64
	}{
		{
			name: "Integers", decimals: 0, step: 1, min: 0, max: 100,
			round: map[float64]float64{12.4: 12, 12.5: 13, 99.9: 100},
		},
		{
			name: "OneDecimal", decimals: 1, step: 0.1, min: 0, max: 100,
			round: map[float64]float64{12.34: 12.3, 0.05: 0.1},
		},
		{
			name: "StepOfThree", decimals: -2, step: 3, min: 0, max: 99,
			round: map[float64]float64{12: 12, 92: 93, 50: 51, 100: 99},
		},
		{
			name: "StepLargerThanRange", decimals: -50, step: 51, min: 0, max: 51,
			round: map[float64]float64{20: 0, 30: 51},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid{decimals: tt.decimals}
			assert.InDelta(t, tt.step, g.step(), 1e-12)
			assert.InDelta(t, tt.min, g.min(), 1e-12)
			assert.InDelta(t, tt.max, g.max(), 1e-12)
			for in, want := range tt.round {
				assert.InDelta(t, want, g.round(in), 1e-9, "round(%v)", in)
			}
		})
	}
}

func TestSettle(t *testing.T) {
	t.Run("Clamps", func(t *testing.T) {
		g := grid{decimals: 0}
		assert.Equal(t, 100.0, g.settle(104.2))
		assert.Equal(t, 0.0, g.settle(-3))
		assert.Equal(t, 42.0, g.settle(41.6))
	})

	t.Run("StaysInRangeOnCoarseGrid", func(t *testing.T) {
		g := grid{decimals: -50}
		assert.Equal(t, 51.0, g.settle(99))
		assert.Equal(t, 0.0, g.settle(-20))
	})
}

func TestInTolerance(t *testing.T) {
	assert.True(t, inTolerance(-4.99))
	assert.True(t, inTolerance(104.99))
	assert.False(t, inTolerance(-5.1))
	assert.False(t, inTolerance(105.1))
	assert.False(t, inTolerance(math.NaN()))
}
