package odorsearch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/odorsearch"
	"github.com/hupe1980/odorsearch/diffevol"
	"github.com/hupe1980/odorsearch/simrig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ odorsearch.Rig = (*simrig.Rig)(nil)

func newTargetSession(t *testing.T, rig *simrig.Rig, channels []odorsearch.Channel, flows []float64, opts ...odorsearch.Option) *odorsearch.Session {
	t.Helper()
	s, err := odorsearch.New(channels, opts...)
	require.NoError(t, err)
	target, err := rig.Response(flows)
	require.NoError(t, err)
	require.NoError(t, s.SetTarget(target))
	return s
}

func TestRun(t *testing.T) {
	channels := testChannels(3)
	rig := testRig(t, 3, 5)
	params := diffevol.DefaultParameters()
	params.MaxIterations = 5

	s := newTargetSession(t, rig, channels, []float64{2, 7, 4},
		odorsearch.WithSeed(21),
		odorsearch.WithParameters(params),
	)

	final, err := odorsearch.Run(context.Background(), s, rig)
	require.NoError(t, err)
	require.True(t, final.Final)

	report := s.RunReport()
	require.NotNil(t, report.Best)
	assert.Equal(t, report.Best.ID, final.Trial)
	assert.Equal(t, report.Best.Values, final.Values)
	for _, trial := range report.Trials {
		assert.GreaterOrEqual(t, trial.Distance, report.Best.Distance)
	}
	assert.Equal(t, rig.Measurements(), len(report.Trials))
	assert.LessOrEqual(t, len(report.Trials), (params.MaxIterations+1)*s.Stats().PopulationSize)
}

func TestRun_ExactTarget(t *testing.T) {
	channels := []odorsearch.Channel{{Name: "lemon", Min: 0, Max: 100}}
	rig := identityRig(t, 1)
	s := newTargetSession(t, rig, channels, []float64{50}, odorsearch.WithSeed(1))

	final, err := odorsearch.Run(context.Background(), s, rig)
	require.NoError(t, err)

	assert.Equal(t, 2, final.Trial)
	assert.Equal(t, []odorsearch.Flow{{Channel: "lemon", Value: 50}}, final.Flows)
	assert.Equal(t, 4, rig.Measurements())
}

func TestRun_MaxTrials(t *testing.T) {
	rig := testRig(t, 2, 3)
	s := newTargetSession(t, rig, testChannels(2), []float64{3, 3}, odorsearch.WithSeed(2))

	_, err := odorsearch.Run(context.Background(), s, rig, odorsearch.WithMaxTrials(3))
	assert.ErrorIs(t, err, odorsearch.ErrTrialBudgetExceeded)
	assert.Equal(t, 3, rig.Measurements())
}

func TestRun_Canceled(t *testing.T) {
	rig := testRig(t, 2, 3)
	s := newTargetSession(t, rig, testChannels(2), []float64{3, 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := odorsearch.Run(ctx, s, rig)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rig.Measurements())
}

func TestRun_RigError(t *testing.T) {
	s, err := odorsearch.New(testChannels(2))
	require.NoError(t, err)
	require.NoError(t, s.SetTarget([]float64{1}))

	errOffline := errors.New("sensor offline")
	calls := 0
	rig := odorsearch.RigFunc(func(ctx context.Context, flows []float64) ([]float64, error) {
		calls++
		if calls == 3 {
			return nil, errOffline
		}
		return []float64{flows[0]}, nil
	})

	_, err = odorsearch.Run(context.Background(), s, rig)
	assert.ErrorIs(t, err, errOffline)
	assert.Equal(t, 2, s.Stats().Trials)
}

func TestRun_Pace(t *testing.T) {
	rig := testRig(t, 1, 1)
	s := newTargetSession(t, rig, testChannels(1), []float64{5}, odorsearch.WithSeed(4))

	start := time.Now()
	_, err := odorsearch.Run(context.Background(), s, rig,
		odorsearch.WithPace(20*time.Millisecond),
		odorsearch.WithMaxTrials(3),
	)
	require.ErrorIs(t, err, odorsearch.ErrTrialBudgetExceeded)

	// The first measurement uses the initial burst.
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRunAll(t *testing.T) {
	channels := []odorsearch.Channel{{Name: "lemon", Min: 0, Max: 100}}

	jobs := make([]odorsearch.Job, 3)
	for i := range jobs {
		rig := identityRig(t, 1)
		jobs[i] = odorsearch.Job{
			Session: newTargetSession(t, rig, channels, []float64{50}, odorsearch.WithSeed(uint64(i))),
			Rig:     rig,
		}
	}

	results, err := odorsearch.RunAll(context.Background(), jobs, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Final)
		assert.Equal(t, []float64{50}, r.Values)
	}
}

func TestRunAll_FirstErrorWins(t *testing.T) {
	errBroken := errors.New("broken rig")
	channels := testChannels(1)

	good := testRig(t, 1, 2)
	jobs := []odorsearch.Job{
		{
			Session: newTargetSession(t, good, channels, []float64{4}),
			Rig: odorsearch.RigFunc(func(context.Context, []float64) ([]float64, error) {
				return nil, errBroken
			}),
		},
		{
			Session: newTargetSession(t, good, channels, []float64{4}),
			Rig:     good,
		},
	}

	_, err := odorsearch.RunAll(context.Background(), jobs, 0)
	assert.ErrorIs(t, err, errBroken)
}
