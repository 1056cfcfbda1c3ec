package odorsearch

import (
	"fmt"
	"math"

	"github.com/hupe1980/odorsearch/diffevol"
	"github.com/hupe1980/odorsearch/journal"
)

// Channel is the calibration of one odor channel. The normalized search
// value range maps affinely onto [Min, Max] flow.
type Channel struct {
	Name string  `yaml:"name" json:"name" validate:"required"`
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max" validate:"gtfield=Min"`
}

// Flow returns the flow for a normalized value.
func (c Channel) Flow(value float64) float64 {
	return c.Min + (c.Max-c.Min)/(diffevol.ValueMax-diffevol.ValueMin)*(value-diffevol.ValueMin)
}

// Value returns the normalized value for a flow. It is the inverse of Flow.
func (c Channel) Value(flow float64) float64 {
	return diffevol.ValueMin + (flow-c.Min)*(diffevol.ValueMax-diffevol.ValueMin)/(c.Max-c.Min)
}

func (c Channel) validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidChannel)
	}
	if math.IsNaN(c.Min) || math.IsInf(c.Min, 0) || math.IsNaN(c.Max) || math.IsInf(c.Max, 0) {
		return fmt.Errorf("%w: %s: non-finite flow range", ErrInvalidChannel, c.Name)
	}
	if c.Max <= c.Min {
		return fmt.Errorf("%w: %s: max %g <= min %g", ErrInvalidChannel, c.Name, c.Max, c.Min)
	}
	return nil
}

func toJournalChannels(channels []Channel) []journal.Channel {
	out := make([]journal.Channel, len(channels))
	for i, c := range channels {
		out[i] = journal.Channel{Name: c.Name, Min: c.Min, Max: c.Max}
	}
	return out
}

func fromJournalChannels(channels []journal.Channel) []Channel {
	out := make([]Channel, len(channels))
	for i, c := range channels {
		out[i] = Channel{Name: c.Name, Min: c.Min, Max: c.Max}
	}
	return out
}

// Flow is the flow of one channel in a recipe.
type Flow struct {
	Channel string  `json:"channel"`
	Value   float64 `json:"value"`
}

// Recipe is a candidate expressed in channel flows.
type Recipe struct {
	Label string `json:"label"`

	// Values is the normalized candidate vector.
	Values []float64 `json:"values"`
	Flows  []Flow    `json:"flows"`

	// Final marks the best recipe of a finished search.
	Final bool `json:"final"`

	// LastDistance is the distance of the most recent measurement.
	LastDistance float64 `json:"lastDistance"`

	// Trial is the id the measurement will get. For the final recipe it is
	// the id of the best trial.
	Trial      int `json:"trial"`
	Generation int `json:"generation"`
}

// FlowValues returns the flows in channel order.
func (r Recipe) FlowValues() []float64 {
	out := make([]float64, len(r.Flows))
	for i, f := range r.Flows {
		out[i] = f.Value
	}
	return out
}

func newRecipe(channels []Channel, c diffevol.TestCandidate) Recipe {
	flows := make([]Flow, len(channels))
	for i, ch := range channels {
		flows[i] = Flow{Channel: ch.Name, Value: ch.Flow(c.Vector[i])}
	}
	return Recipe{
		Label:        c.Label,
		Values:       c.Vector,
		Flows:        flows,
		Final:        c.IsFinal,
		LastDistance: c.LastDistance,
		Trial:        c.Trial,
		Generation:   c.Generation,
	}
}
