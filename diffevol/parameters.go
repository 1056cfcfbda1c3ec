package diffevol

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hupe1980/odorsearch/distance"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parameters configures a search run. They are immutable for the run.
type Parameters struct {
	// CrossoverRate is the probability of inheriting a mutant component.
	CrossoverRate float64 `yaml:"crossoverRate" json:"crossoverRate" validate:"gte=0,lte=1"`

	// MutationFactor scales the difference vector of DE/rand/1 mutation.
	MutationFactor float64 `yaml:"mutationFactor" json:"mutationFactor" validate:"gt=0,lte=2"`

	// Decimals is the number of decimal places every vector component is
	// rounded to. A negative value d rounds to the nearest multiple of |d|+1.
	Decimals int `yaml:"decimals" json:"decimals" validate:"gte=-50,lte=10"`

	// Kernel compares a measurement with the target.
	Kernel distance.Kernel `yaml:"kernel" json:"kernel"`

	// DistanceThreshold ends the search once the best distance drops below it.
	DistanceThreshold float64 `yaml:"distanceThreshold" json:"distanceThreshold" validate:"gte=0"`

	// MaxIterations ends the search after that many evolved generations.
	MaxIterations int `yaml:"maxIterations" json:"maxIterations" validate:"gte=0"`
}

// DefaultParameters returns the default search configuration.
func DefaultParameters() Parameters {
	return Parameters{
		CrossoverRate:     0.7,
		MutationFactor:    0.8,
		Decimals:          0,
		Kernel:            distance.KernelEuclidean,
		DistanceThreshold: 0.1,
		MaxIterations:     10,
	}
}

// Validate checks value ranges and that the kernel is implemented.
func (p Parameters) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	if _, err := distance.Provider(p.Kernel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	return nil
}
