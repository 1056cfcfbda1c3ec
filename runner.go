package odorsearch

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Rig measures an odor mixture.
type Rig interface {
	// Measure sets the channel flows, waits for the mixture to settle and
	// returns the sensor values. flows are in channel order.
	Measure(ctx context.Context, flows []float64) ([]float64, error)
}

// RigFunc adapts a function to the Rig interface.
type RigFunc func(ctx context.Context, flows []float64) ([]float64, error)

// Measure implements Rig.
func (f RigFunc) Measure(ctx context.Context, flows []float64) ([]float64, error) {
	return f(ctx, flows)
}

type runOptions struct {
	pace      time.Duration
	maxTrials int
}

// RunOption configures Run.
type RunOption func(*runOptions)

// WithPace enforces a minimum interval between measurements, e.g. to let
// the rig flush a previous mixture. Zero disables pacing.
func WithPace(d time.Duration) RunOption {
	return func(o *runOptions) {
		o.pace = d
	}
}

// WithMaxTrials stops Run with ErrTrialBudgetExceeded after n measurements.
// Zero means no limit.
func WithMaxTrials(n int) RunOption {
	return func(o *runOptions) {
		o.maxTrials = n
	}
}

// Run drives s against rig until the search finishes and returns the final
// recipe. The target must be set. Cancelling ctx stops Run between trials;
// the session can then be continued or resumed from its journal.
func Run(ctx context.Context, s *Session, rig Rig, optFns ...RunOption) (Recipe, error) {
	opts := runOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	var limiter *rate.Limiter
	if opts.pace > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.pace), 1)
	}

	for trials := 0; ; trials++ {
		if err := ctx.Err(); err != nil {
			return Recipe{}, err
		}

		r, err := s.Next()
		if err != nil {
			return Recipe{}, err
		}
		if r.Final {
			return r, nil
		}

		if opts.maxTrials > 0 && trials >= opts.maxTrials {
			return Recipe{}, fmt.Errorf("%w: %d trials", ErrTrialBudgetExceeded, trials)
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return Recipe{}, err
			}
		}

		measurement, err := rig.Measure(ctx, r.FlowValues())
		if err != nil {
			return Recipe{}, fmt.Errorf("measure trial %d: %w", r.Trial, err)
		}

		if err := s.Report(measurement); err != nil {
			return Recipe{}, err
		}
	}
}

// Job is one independent search for RunAll.
type Job struct {
	Session *Session
	Rig     Rig
	Options []RunOption
}

// RunAll runs jobs concurrently, at most limit at a time (limit <= 0 means
// no limit). Results are in job order. The first error cancels the other jobs.
func RunAll(ctx context.Context, jobs []Job, limit int) ([]Recipe, error) {
	results := make([]Recipe, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {
		g.Go(func() error {
			r, err := Run(ctx, job.Session, job.Rig, job.Options...)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.Session.ID(), err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
