package odorsearch

import (
	"math"
	"testing"

	"github.com/hupe1980/odorsearch/diffevol"
	"github.com/stretchr/testify/assert"
)

func TestChannel_Flow(t *testing.T) {
	tests := []struct {
		name    string
		channel Channel
		value   float64
		flow    float64
	}{
		{"Min", Channel{Name: "a", Min: 2, Max: 12}, diffevol.ValueMin, 2},
		{"Max", Channel{Name: "a", Min: 2, Max: 12}, diffevol.ValueMax, 12},
		{"Mid", Channel{Name: "a", Min: 2, Max: 12}, 50, 7},
		{"Identity", Channel{Name: "a", Min: 0, Max: 100}, 37, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.flow, tt.channel.Flow(tt.value), 1e-12)
			assert.InDelta(t, tt.value, tt.channel.Value(tt.flow), 1e-12)
		})
	}
}

func TestChannel_Validate(t *testing.T) {
	assert.NoError(t, Channel{Name: "a", Min: 0, Max: 1}.validate())
	assert.ErrorIs(t, Channel{Min: 0, Max: 1}.validate(), ErrInvalidChannel)
	assert.ErrorIs(t, Channel{Name: "a", Min: 1, Max: 1}.validate(), ErrInvalidChannel)
	assert.ErrorIs(t, Channel{Name: "a", Min: 0, Max: math.Inf(1)}.validate(), ErrInvalidChannel)
	assert.ErrorIs(t, Channel{Name: "a", Min: math.NaN(), Max: 1}.validate(), ErrInvalidChannel)
}

func TestJournalChannelConversion(t *testing.T) {
	channels := []Channel{{Name: "a", Min: 0, Max: 1}, {Name: "b", Min: 2, Max: 3}}
	assert.Equal(t, channels, fromJournalChannels(toJournalChannels(channels)))
}

func TestRecipe_FlowValues(t *testing.T) {
	channels := []Channel{{Name: "a", Min: 0, Max: 10}, {Name: "b", Min: 0, Max: 1}}
	r := newRecipe(channels, diffevol.TestCandidate{Label: "x", Vector: []float64{50, 100}, Trial: 3, LastDistance: 2})

	assert.Equal(t, []float64{5, 1}, r.FlowValues())
	assert.Equal(t, []Flow{{Channel: "a", Value: 5}, {Channel: "b", Value: 1}}, r.Flows)
	assert.Equal(t, 3, r.Trial)
	assert.Equal(t, 2.0, r.LastDistance)
}
