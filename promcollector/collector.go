package promcollector

import (
	"strconv"
	"time"

	"github.com/hupe1980/odorsearch"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements odorsearch.MetricsCollector with Prometheus metrics.
// One Collector can be shared by concurrent sessions.
type Collector struct {
	candidates          *prometheus.CounterVec
	measurements        *prometheus.CounterVec
	measurementDuration prometheus.Histogram
	distance            prometheus.Histogram
	lastDistance        prometheus.Gauge
	improvements        *prometheus.CounterVec
	runsFinished        prometheus.Counter
	finalDistance       prometheus.Gauge
	finalTrials         prometheus.Histogram
}

// New registers the search metrics with reg under namespace.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		candidates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Candidates handed to the host by kind",
		}, []string{"kind"}),
		measurements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurements_total",
			Help:      "Reported measurements by result",
		}, []string{"result"}),
		measurementDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "measurement_duration_seconds",
			Help:      "Time from handing out a candidate to its report",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
		}),
		distance: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "measurement_distance",
			Help:      "Distance of measurements to the target",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
		}),
		lastDistance: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_distance",
			Help:      "Distance of the latest measurement",
		}),
		improvements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "improvements_total",
			Help:      "Trials that replaced a population member, by slot",
		}, []string{"slot"}),
		runsFinished: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_finished_total",
			Help:      "Searches that produced a final recipe",
		}),
		finalDistance: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "final_distance",
			Help:      "Best distance of the latest finished search",
		}),
		finalTrials: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_trials",
			Help:      "Measurements needed per finished search",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 10),
		}),
	}
}

// RecordCandidate implements odorsearch.MetricsCollector.
func (c *Collector) RecordCandidate(generation int, final bool) {
	kind := "trial"
	if final {
		kind = "final"
	} else if generation == 0 {
		kind = "initial"
	}
	c.candidates.WithLabelValues(kind).Inc()
}

// RecordMeasurement implements odorsearch.MetricsCollector.
func (c *Collector) RecordMeasurement(distance float64, duration time.Duration, err error) {
	if err != nil {
		c.measurements.WithLabelValues("error").Inc()
		return
	}
	c.measurements.WithLabelValues("ok").Inc()
	c.measurementDuration.Observe(duration.Seconds())
	c.distance.Observe(distance)
	c.lastDistance.Set(distance)
}

// RecordImprovement implements odorsearch.MetricsCollector.
func (c *Collector) RecordImprovement(slot int) {
	c.improvements.WithLabelValues(strconv.Itoa(slot)).Inc()
}

// RecordFinal implements odorsearch.MetricsCollector.
func (c *Collector) RecordFinal(trials int, distance float64) {
	c.runsFinished.Inc()
	c.finalDistance.Set(distance)
	c.finalTrials.Observe(float64(trials))
}

var _ odorsearch.MetricsCollector = (*Collector)(nil)
