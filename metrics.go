package odorsearch

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting search metrics.
// Implement this interface to integrate with monitoring systems; package
// promcollector provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordCandidate is called whenever a candidate is handed to the host.
	// final is true for the final recipe.
	RecordCandidate(generation int, final bool)

	// RecordMeasurement is called after each reported measurement.
	// duration is the time between handing out the candidate and the report,
	// err is nil if the measurement was accepted.
	RecordMeasurement(distance float64, duration time.Duration, err error)

	// RecordImprovement is called when a trial replaces the population member in slot.
	RecordImprovement(slot int)

	// RecordFinal is called once per run when the search finishes.
	RecordFinal(trials int, distance float64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCandidate(int, bool)                       {}
func (NoopMetricsCollector) RecordMeasurement(float64, time.Duration, error) {}
func (NoopMetricsCollector) RecordImprovement(int)                           {}
func (NoopMetricsCollector) RecordFinal(int, float64)                        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CandidateCount        atomic.Int64
	MeasurementCount      atomic.Int64
	MeasurementErrors     atomic.Int64
	MeasurementTotalNanos atomic.Int64
	ImprovementCount      atomic.Int64
	FinalCount            atomic.Int64
	FinalTrials           atomic.Int64

	lastDistance  atomic.Uint64
	finalDistance atomic.Uint64
}

// RecordCandidate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCandidate(generation int, final bool) {
	if final {
		return
	}
	b.CandidateCount.Add(1)
}

// RecordMeasurement implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMeasurement(distance float64, duration time.Duration, err error) {
	b.MeasurementCount.Add(1)
	b.MeasurementTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MeasurementErrors.Add(1)
		return
	}
	b.lastDistance.Store(math.Float64bits(distance))
}

// RecordImprovement implements MetricsCollector.
func (b *BasicMetricsCollector) RecordImprovement(slot int) {
	b.ImprovementCount.Add(1)
}

// RecordFinal implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFinal(trials int, distance float64) {
	b.FinalCount.Add(1)
	b.FinalTrials.Store(int64(trials))
	b.finalDistance.Store(math.Float64bits(distance))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CandidateCount:      b.CandidateCount.Load(),
		MeasurementCount:    b.MeasurementCount.Load(),
		MeasurementErrors:   b.MeasurementErrors.Load(),
		MeasurementAvgNanos: b.getAvgMeasurementNanos(),
		ImprovementCount:    b.ImprovementCount.Load(),
		FinalCount:          b.FinalCount.Load(),
		FinalTrials:         b.FinalTrials.Load(),
		LastDistance:        math.Float64frombits(b.lastDistance.Load()),
		FinalDistance:       math.Float64frombits(b.finalDistance.Load()),
	}
}

func (b *BasicMetricsCollector) getAvgMeasurementNanos() int64 {
	count := b.MeasurementCount.Load()
	if count == 0 {
		return 0
	}
	return b.MeasurementTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CandidateCount      int64
	MeasurementCount    int64
	MeasurementErrors   int64
	MeasurementAvgNanos int64
	ImprovementCount    int64
	FinalCount          int64
	FinalTrials         int64
	LastDistance        float64
	FinalDistance       float64
}
