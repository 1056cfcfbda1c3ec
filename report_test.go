package odorsearch_test

import (
	"context"
	"testing"

	"github.com/hupe1980/odorsearch"
	"github.com/hupe1980/odorsearch/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedSession(t *testing.T, id string) *odorsearch.Session {
	t.Helper()
	rig := testRig(t, 2, 4)
	s := newTargetSession(t, rig, testChannels(2), []float64{5, 5},
		odorsearch.WithSeed(9),
		odorsearch.WithRunID(id),
	)
	_, err := odorsearch.Run(context.Background(), s, rig)
	require.NoError(t, err)
	return s
}

func TestRunReport(t *testing.T) {
	s, err := odorsearch.New(testChannels(2), odorsearch.WithRunID("empty"))
	require.NoError(t, err)

	empty := s.RunReport()
	assert.Equal(t, "empty", empty.ID)
	assert.False(t, empty.Finished)
	assert.Nil(t, empty.Best)
	assert.Nil(t, empty.Target)
	assert.Empty(t, empty.Trials)

	s = finishedSession(t, "done")
	r := s.RunReport()
	assert.True(t, r.Finished)
	assert.False(t, r.FinishedAt.Before(r.StartedAt))
	require.NotNil(t, r.Best)

	pop := s.Stats().PopulationSize
	improved := map[int]bool{}
	for _, id := range r.Improved {
		improved[id] = true
		assert.GreaterOrEqual(t, id, pop)
	}
	for i, trial := range r.Trials {
		assert.Equal(t, i, trial.ID)
		assert.Equal(t, i/pop, trial.Generation)
		assert.Equal(t, improved[i], trial.Improved)
		for j, ch := range r.Channels {
			assert.InDelta(t, ch.Flow(trial.Values[j]), trial.Flows[j], 1e-12)
		}
	}
}

func TestArchiveReport(t *testing.T) {
	ctx := context.Background()
	report := finishedSession(t, "run-42").RunReport()

	for _, c := range []archive.Compression{archive.None, archive.LZ4, archive.Zstd} {
		t.Run(c.String(), func(t *testing.T) {
			store := archive.NewMemoryStore()

			name, err := odorsearch.ArchiveReport(ctx, store, report, c)
			require.NoError(t, err)
			assert.Equal(t, odorsearch.ReportName("run-42", c), name)

			got, err := odorsearch.LoadReport(ctx, store, name)
			require.NoError(t, err)
			assert.Equal(t, report.ID, got.ID)
			assert.Equal(t, report.Parameters, got.Parameters)
			assert.Equal(t, report.Trials, got.Trials)
			assert.Equal(t, report.Best, got.Best)
			assert.Equal(t, report.Improved, got.Improved)
			assert.True(t, report.StartedAt.Equal(got.StartedAt))

			names, err := odorsearch.ListReports(ctx, store)
			require.NoError(t, err)
			assert.Equal(t, []string{name}, names)
		})
	}
}

func TestReportName(t *testing.T) {
	assert.Equal(t, "reports/a.json", odorsearch.ReportName("a", archive.None))
	assert.Equal(t, "reports/a.json.lz4", odorsearch.ReportName("a", archive.LZ4))
	assert.Equal(t, "reports/a.json.zst", odorsearch.ReportName("a", archive.Zstd))
}

func TestLoadReport_NotFound(t *testing.T) {
	_, err := odorsearch.LoadReport(context.Background(), archive.NewMemoryStore(), "reports/missing.json")
	assert.ErrorIs(t, err, archive.ErrNotFound)
}
