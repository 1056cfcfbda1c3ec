package odorsearch

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/hupe1980/odorsearch/archive"
	"github.com/hupe1980/odorsearch/codec"
	"github.com/hupe1980/odorsearch/diffevol"
)

// ReportPrefix is the archive prefix of run reports.
const ReportPrefix = "reports/"

// TrialReport is one measured trial of a run.
type TrialReport struct {
	ID          int       `json:"id"`
	Generation  int       `json:"generation"`
	Values      []float64 `json:"values"`
	Flows       []float64 `json:"flows"`
	Measurement []float64 `json:"measurement"`
	Distance    float64   `json:"distance"`
	Improved    bool      `json:"improved,omitempty"`
}

// RunReport summarizes a run.
type RunReport struct {
	ID         string              `json:"id"`
	Seed       uint64              `json:"seed"`
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
	Finished   bool                `json:"finished"`
	Channels   []Channel           `json:"channels"`
	Parameters diffevol.Parameters `json:"parameters"`
	Target     []float64           `json:"target"`
	Trials     []TrialReport       `json:"trials"`

	// Best is the trial with the smallest distance, nil before the first measurement.
	Best *TrialReport `json:"best,omitempty"`

	// Improved lists the trials that replaced a population member.
	Improved  []int `json:"improved"`
	Fallbacks int   `json:"fallbacks"`
}

// RunReport returns a summary of the run so far.
func (s *Session) RunReport() RunReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.engine.History()
	improved := s.engine.Improved()
	pop := s.engine.PopulationSize()

	isImproved := make(map[int]bool, len(improved))
	for _, id := range improved {
		isImproved[id] = true
	}

	trials := make([]TrialReport, len(history))
	for i, c := range history {
		flows := make([]float64, len(s.channels))
		for j, ch := range s.channels {
			flows[j] = ch.Flow(c.Vector[j])
		}
		trials[i] = TrialReport{
			ID:          i,
			Generation:  i / pop,
			Values:      c.Vector,
			Flows:       flows,
			Measurement: c.Measurement,
			Distance:    c.Distance,
			Improved:    isImproved[i],
		}
	}

	r := RunReport{
		ID:         s.id,
		Seed:       s.seed,
		StartedAt:  s.startedAt,
		FinishedAt: s.finishedAt,
		Finished:   s.final,
		Channels:   s.Channels(),
		Parameters: s.params,
		Target:     s.engine.Target(),
		Trials:     trials,
		Improved:   improved,
		Fallbacks:  s.engine.Stats().Fallbacks,
	}
	if _, best, ok := s.engine.GrandMinima(); ok {
		b := trials[best]
		r.Best = &b
	}
	return r
}

// ReportName returns the archive name of a report.
func ReportName(runID string, c archive.Compression) string {
	return ReportPrefix + runID + ".json" + c.Extension()
}

// ArchiveReport stores r in store and returns its name.
func ArchiveReport(ctx context.Context, store archive.Store, r RunReport, c archive.Compression) (string, error) {
	data, err := codec.Default.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	blob, err := archive.Encode(data, c)
	if err != nil {
		return "", err
	}

	name := ReportName(r.ID, c)
	if err := store.Put(ctx, name, blob); err != nil {
		return "", fmt.Errorf("failed to store report %s: %w", name, err)
	}
	return name, nil
}

// LoadReport reads a report written by ArchiveReport.
func LoadReport(ctx context.Context, store archive.Store, name string) (RunReport, error) {
	blob, err := store.Get(ctx, name)
	if err != nil {
		return RunReport{}, err
	}

	data, err := archive.Decode(blob)
	if err != nil {
		return RunReport{}, fmt.Errorf("report %s: %w", name, err)
	}

	var r RunReport
	if err := codec.Default.Unmarshal(data, &r); err != nil {
		return RunReport{}, fmt.Errorf("failed to decode report %s: %w", name, err)
	}
	return r, nil
}

// ListReports returns the names of all archived reports.
func ListReports(ctx context.Context, store archive.Store) ([]string, error) {
	names, err := store.List(ctx, ReportPrefix)
	if err != nil {
		return nil, err
	}

	out := names[:0]
	for _, name := range names {
		if strings.Contains(path.Base(name), ".json") {
			out = append(out, name)
		}
	}
	return out, nil
}
