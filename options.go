package odorsearch

import (
	"log/slog"
	"time"

	"github.com/hupe1980/odorsearch/codec"
	"github.com/hupe1980/odorsearch/diffevol"
	"github.com/hupe1980/odorsearch/journal"
	"github.com/hupe1980/odorsearch/matrix"
)

// VectorFormatter renders a normalized vector for log output.
type VectorFormatter func(values []float64) string

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	params           diffevol.Parameters
	seed             uint64
	seedSet          bool
	runID            string
	journalDir       string
	journalOptions   []func(*journal.Options)
	formatter        VectorFormatter
	clock            func() time.Time
}

// Option configures a Session.
type Option func(*options)

// WithCodec configures the codec used for journal metadata.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithParameters sets the search parameters. The default is
// diffevol.DefaultParameters().
func WithParameters(p diffevol.Parameters) Option {
	return func(o *options) {
		o.params = p
	}
}

// WithSeed makes the search deterministic. Without it a random seed is
// drawn and recorded in the journal.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}

// WithJournal appends every target, trial and final decision to
// <dir>/<runID>.journal.
//
// Example:
//
//	s, _ := odorsearch.New(channels,
//	    odorsearch.WithJournal("./runs", func(o *journal.Options) {
//	        o.Compress = true
//	    }),
//	)
func WithJournal(dir string, optFns ...func(*journal.Options)) Option {
	return func(o *options) {
		o.journalDir = dir
		o.journalOptions = optFns
	}
}

// WithMetricsCollector configures a metrics collector for monitoring a run.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &odorsearch.BasicMetricsCollector{}
//	s, _ := odorsearch.New(channels, odorsearch.WithMetricsCollector(metrics))
//	// ... run the search ...
//	stats := metrics.GetStats()
//	fmt.Printf("Trials: %d, Avg measurement: %dns\n", stats.MeasurementCount, stats.MeasurementAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for a run.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := odorsearch.NewJSONLogger(slog.LevelInfo)
//	s, _ := odorsearch.New(channels, odorsearch.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithVectorFormatter sets how candidate vectors are rendered in logs.
func WithVectorFormatter(f VectorFormatter) Option {
	return func(o *options) {
		o.formatter = f
	}
}

// WithClock replaces time.Now, e.g. for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

func defaultFormatter(values []float64) string {
	return matrix.FromRow(values).String()
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		params:           diffevol.DefaultParameters(),
		formatter:        defaultFormatter,
		clock:            time.Now,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.formatter == nil {
		o.formatter = defaultFormatter
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	return o
}
