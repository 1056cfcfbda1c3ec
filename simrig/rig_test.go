package simrig

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/odorsearch/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		signatures [][]float64
		baseline   []float64
		err        error
	}{
		{"Valid", [][]float64{{1, 0}, {0, 1}}, nil, nil},
		{"Baseline", [][]float64{{1, 0}}, []float64{0.5, 0.5}, nil},
		{"Empty", nil, nil, ErrNoSignatures},
		{"NoSensors", [][]float64{{}}, nil, ErrNoSignatures},
		{"Ragged", [][]float64{{1, 0}, {1}}, nil, ErrRaggedSignatures},
		{"BadBaseline", [][]float64{{1, 0}}, []float64{1}, ErrRaggedSignatures},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig, err := New(tt.signatures, func(o *Options) {
				o.Baseline = tt.baseline
			})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.signatures), rig.Channels())
			assert.Equal(t, len(tt.signatures[0]), rig.Sensors())
		})
	}
}

func TestResponse(t *testing.T) {
	rig, err := New([][]float64{{1, 0, 2}, {0, 3, 1}}, func(o *Options) {
		o.Baseline = []float64{1, 1, 1}
	})
	require.NoError(t, err)

	out, err := rig.Response([]float64{2, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 6}, out)

	_, err = rig.Response([]float64{1})
	assert.ErrorIs(t, err, ErrFlowCount)
}

func TestMeasureNoiseFree(t *testing.T) {
	sigs := testutil.NewRNG(1).Signatures(3, 4)
	rig, err := New(sigs)
	require.NoError(t, err)

	flows := []float64{1, 2, 3}
	want, err := rig.Response(flows)
	require.NoError(t, err)

	got, err := rig.Measure(context.Background(), flows)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, rig.Measurements())
}

func TestMeasureNoiseIsSeeded(t *testing.T) {
	sigs := [][]float64{{1, 0}, {0, 1}}
	measure := func() []float64 {
		rig, err := New(sigs, func(o *Options) {
			o.Noise = 0.1
			o.Seed = 99
		})
		require.NoError(t, err)
		out, err := rig.Measure(context.Background(), []float64{5, 5})
		require.NoError(t, err)
		return out
	}

	a, b := measure(), measure()
	assert.Equal(t, a, b)
	assert.NotEqual(t, []float64{5, 5}, a)
	assert.InDelta(t, 5, a[0], 1)
}

func TestMeasureHonorsContext(t *testing.T) {
	rig, err := New([][]float64{{1}}, func(o *Options) {
		o.Delay = time.Hour
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = rig.Measure(ctx, []float64{1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rig.Measurements())
}

func TestRandomSignatures(t *testing.T) {
	sigs := RandomSignatures(3, 2, 5)

	require.Len(t, sigs, 3)
	for i, sig := range sigs {
		assert.Len(t, sig, 2)
		assert.GreaterOrEqual(t, sig[i%2], 1.0)
		assert.True(t, testutil.InRange(sig, 0, 1.1))
	}
	assert.Equal(t, sigs, RandomSignatures(3, 2, 5))
}
