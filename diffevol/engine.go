package diffevol

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/hupe1980/odorsearch/distance"
	"github.com/hupe1980/odorsearch/internal/trialset"
	"github.com/hupe1980/odorsearch/matrix"
)

// FinalLabel labels the candidate that ends a search.
const FinalLabel = "Final recipe"

// State is the phase of a search run.
type State int

const (
	// CollectingInitial means the first generation is still being measured.
	CollectingInitial State = iota
	// Iterating means evolved generations are being measured.
	Iterating
	// Finished means a final candidate was produced.
	Finished
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case CollectingInitial:
		return "CollectingInitial"
	case Iterating:
		return "Iterating"
	case Finished:
		return "Finished"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// TestCandidate is the vector the host should measure next.
type TestCandidate struct {
	Label        string
	Vector       []float64
	IsFinal      bool
	LastDistance float64

	// Trial is the id the measurement of this candidate will get. For the
	// final candidate it is the id of the best trial.
	Trial      int
	Generation int
	Slot       int
}

// Candidate is one measured trial.
type Candidate struct {
	Vector      []float64
	Measurement []float64
	Distance    float64
}

// Stats summarizes the progress of a search run.
type Stats struct {
	Trials         int
	Generation     int
	PopulationSize int
	State          State
	Fallbacks      int
	Improvements   int
	GrandMinima    float64
}

// Engine runs an online differential evolution search over [ValueMin, ValueMax]^varCount.
//
// The host alternates GetTestCandidate and AddMeasurement. An Engine is not
// safe for concurrent use; run one Engine per search.
type Engine struct {
	varCount int
	params   Parameters
	kernel   distance.Func
	rng      *rand.Rand
	grid     grid

	bestVectors      *matrix.Matrix[float64]
	iterationVectors *matrix.Matrix[float64]
	candidateIndices []int
	history          []Candidate

	target []float64

	grandMinima          float64
	grandMinimaIndex     int
	iterationMinima      float64
	iterationMinimaIndex int
	lastDistance         float64

	// preparedGeneration is the latest generation whose vectors were built.
	preparedGeneration int
	final              *TestCandidate
	improved           *trialset.Set
	fallbacks          int
}

// New creates an engine for varCount channels.
func New(varCount int, params Parameters, optFns ...Option) (*Engine, error) {
	if varCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVarCount, varCount)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	kernel, err := distance.Provider(params.Kernel)
	if err != nil {
		return nil, err
	}

	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.rng == nil {
		opts.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec
	}

	best, err := CreateInitialVectors(varCount, params.Decimals, opts.rng)
	if err != nil {
		return nil, err
	}

	indices := make([]int, best.Cols())
	for i := range indices {
		indices[i] = i
	}

	return &Engine{
		varCount:             varCount,
		params:               params,
		kernel:               kernel,
		rng:                  opts.rng,
		grid:                 grid{decimals: params.Decimals},
		bestVectors:          best,
		iterationVectors:     best.Copy(),
		candidateIndices:     indices,
		grandMinima:          math.Inf(1),
		grandMinimaIndex:     -1,
		iterationMinima:      math.Inf(1),
		iterationMinimaIndex: -1,
		lastDistance:         math.Inf(1),
		improved:             trialset.New(),
	}, nil
}

// SetTarget sets the measurement the search tries to reproduce.
// It can be called once, before the first AddMeasurement.
func (e *Engine) SetTarget(target []float64) error {
	if e.target != nil {
		return ErrTargetAlreadySet
	}
	if len(target) == 0 {
		return ErrEmptyTarget
	}
	e.target = slices.Clone(target)
	return nil
}

// GetTestCandidate returns the next vector to measure.
//
// At each generation boundary the termination conditions are checked first.
// Once a final candidate is returned, every later call returns it again.
// Repeated calls without AddMeasurement in between return the same candidate.
func (e *Engine) GetTestCandidate() (TestCandidate, error) {
	if e.final != nil {
		return e.finalCandidate(), nil
	}

	trial := len(e.history)
	pop := e.PopulationSize()
	slot, generation := trial%pop, trial/pop

	if generation > 0 && generation > e.preparedGeneration {
		if e.shouldFinish(generation) {
			best := e.history[e.grandMinimaIndex]
			e.final = &TestCandidate{
				Label:        FinalLabel,
				Vector:       clampVector(best.Vector),
				IsFinal:      true,
				LastDistance: e.lastDistance,
				Trial:        e.grandMinimaIndex,
				Generation:   generation,
				Slot:         slot,
			}
			return e.finalCandidate(), nil
		}
		if err := e.nextGeneration(); err != nil {
			return TestCandidate{}, err
		}
		e.preparedGeneration = generation
	}

	vector, err := e.iterationVector(slot, generation)
	if err != nil {
		return TestCandidate{}, err
	}

	return TestCandidate{
		Label:        fmt.Sprintf("Generation %d, candidate %d of %d", generation, slot+1, pop),
		Vector:       vector,
		LastDistance: e.lastDistance,
		Trial:        trial,
		Generation:   generation,
		Slot:         slot,
	}, nil
}

// AddMeasurement records the measurement of the candidate last returned by
// GetTestCandidate.
func (e *Engine) AddMeasurement(measurement []float64) error {
	if e.final != nil {
		return ErrFinished
	}
	if e.target == nil {
		return ErrTargetNotSet
	}

	trial := len(e.history)
	pop := e.PopulationSize()
	slot, generation := trial%pop, trial/pop

	if generation > e.preparedGeneration {
		return fmt.Errorf("%w: generation %d", ErrNoCandidate, generation)
	}

	for i, v := range measurement {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sensor %d is %v", ErrInvalidMeasurement, i, v)
		}
	}

	dist, err := e.kernel(e.target, measurement)
	if err != nil {
		return err
	}
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return fmt.Errorf("%w: distance %v", ErrInvalidMeasurement, dist)
	}

	vector, err := e.iterationVector(slot, generation)
	if err != nil {
		return err
	}

	e.history = append(e.history, Candidate{
		Vector:      vector,
		Measurement: slices.Clone(measurement),
		Distance:    dist,
	})
	e.lastDistance = dist

	if dist < e.grandMinima {
		e.grandMinima = dist
		e.grandMinimaIndex = trial
	}

	if trial < pop {
		return nil
	}

	if dist < e.iterationMinima {
		e.iterationMinima = dist
		e.iterationMinimaIndex = trial
	}

	if dist < e.history[e.candidateIndices[slot]].Distance {
		if err := e.bestVectors.ReplaceColumn(slot, matrix.FromColumn(vector)); err != nil {
			return err
		}
		e.candidateIndices[slot] = trial
		e.improved.Add(trial)
	}

	return nil
}

// shouldFinish reports whether the search ends before generation starts.
// An exact hit ends the search even with a zero threshold.
func (e *Engine) shouldFinish(generation int) bool {
	if e.grandMinimaIndex < 0 {
		return false
	}
	return e.grandMinima < e.params.DistanceThreshold ||
		e.grandMinima == 0 ||
		generation > e.params.MaxIterations
}

// nextGeneration builds the vectors of the next generation from the population.
func (e *Engine) nextGeneration() error {
	donors, err := e.mutate(e.bestVectors)
	if err != nil {
		return fmt.Errorf("mutate: %w", err)
	}
	trial, err := e.crossover(e.bestVectors, donors)
	if err != nil {
		return fmt.Errorf("crossover: %w", err)
	}
	vectors, err := e.validate(trial.Apply(e.grid.settle))
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	e.iterationVectors = vectors
	e.iterationMinima = math.Inf(1)
	e.iterationMinimaIndex = -1
	return nil
}

// iterationVector returns the vector of slot. Evolved generations are clamped
// into the value range.
func (e *Engine) iterationVector(slot, generation int) ([]float64, error) {
	col, err := e.iterationVectors.Column(slot)
	if err != nil {
		return nil, err
	}
	if generation == 0 {
		return col.Values(), nil
	}
	return clampVector(col.Values()), nil
}

func (e *Engine) finalCandidate() TestCandidate {
	c := *e.final
	c.Vector = slices.Clone(c.Vector)
	return c
}

// VarCount returns the number of search dimensions.
func (e *Engine) VarCount() int { return e.varCount }

// PopulationSize returns the number of population members.
func (e *Engine) PopulationSize() int { return e.bestVectors.Cols() }

// Parameters returns the run parameters.
func (e *Engine) Parameters() Parameters { return e.params }

// Target returns a copy of the target, or nil before SetTarget.
func (e *Engine) Target() []float64 { return slices.Clone(e.target) }

// State returns the phase of the run.
func (e *Engine) State() State {
	switch {
	case e.final != nil:
		return Finished
	case len(e.history) < e.PopulationSize():
		return CollectingInitial
	default:
		return Iterating
	}
}

// Generation returns the generation of the next trial.
func (e *Engine) Generation() int { return len(e.history) / e.PopulationSize() }

// GrandMinima returns the smallest distance of the run and its trial id.
// ok is false before the first measurement.
func (e *Engine) GrandMinima() (dist float64, trial int, ok bool) {
	return e.grandMinima, e.grandMinimaIndex, e.grandMinimaIndex >= 0
}

// IterationMinima returns the smallest distance of the current evolved
// generation and its trial id. ok is false when none was measured yet.
func (e *Engine) IterationMinima() (dist float64, trial int, ok bool) {
	return e.iterationMinima, e.iterationMinimaIndex, e.iterationMinimaIndex >= 0
}

// LastDistance returns the distance of the latest measurement, +Inf before the first.
func (e *Engine) LastDistance() float64 { return e.lastDistance }

// History returns a copy of every measured trial, indexed by trial id.
func (e *Engine) History() []Candidate {
	out := make([]Candidate, len(e.history))
	for i, c := range e.history {
		out[i] = Candidate{
			Vector:      slices.Clone(c.Vector),
			Measurement: slices.Clone(c.Measurement),
			Distance:    c.Distance,
		}
	}
	return out
}

// Population returns a copy of the best vector per slot, one per column.
func (e *Engine) Population() *matrix.Matrix[float64] { return e.bestVectors.Copy() }

// IterationVectors returns a copy of the vectors of the current generation.
func (e *Engine) IterationVectors() *matrix.Matrix[float64] { return e.iterationVectors.Copy() }

// CandidateIndices returns, per slot, the trial id the slot's vector was measured in.
func (e *Engine) CandidateIndices() []int { return slices.Clone(e.candidateIndices) }

// Improved returns the ids of trials that replaced a population member, ascending.
func (e *Engine) Improved() []int { return e.improved.Slice() }

// Stats returns a snapshot of the run's progress.
func (e *Engine) Stats() Stats {
	return Stats{
		Trials:         len(e.history),
		Generation:     e.Generation(),
		PopulationSize: e.PopulationSize(),
		State:          e.State(),
		Fallbacks:      e.fallbacks,
		Improvements:   e.improved.Len(),
		GrandMinima:    e.grandMinima,
	}
}
