package odorsearch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/odorsearch/codec"
	"github.com/hupe1980/odorsearch/diffevol"
	"github.com/hupe1980/odorsearch/distance"
	"github.com/hupe1980/odorsearch/journal"
)

// Session is one odor search run driven by a host.
//
// The host alternates Next and Report until Next returns a final recipe.
// All methods are safe for concurrent use, but a run is inherently sequential.
type Session struct {
	mu sync.Mutex

	id        string
	channels  []Channel
	engine    *diffevol.Engine
	params    diffevol.Parameters
	seed      uint64
	codec     codec.Codec
	logger    *Logger
	metrics   MetricsCollector
	journal   *journal.Journal
	formatter VectorFormatter
	clock     func() time.Time

	startedAt  time.Time
	finishedAt time.Time

	pending      *diffevol.TestCandidate
	pendingAt    time.Time
	final        bool
	fallbacks    int
	improvements int

	// journalErr is the first failed journal write. The engine may hold state
	// the journal lacks, so the session stops; Resume continues from the
	// last recorded trial.
	journalErr error
}

// New creates a session searching over the given channels.
func New(channels []Channel, optFns ...Option) (*Session, error) {
	opts := applyOptions(optFns)

	s, err := newSession(channels, opts)
	if err != nil {
		return nil, err
	}

	if opts.journalDir != "" {
		if err := s.openJournal(journal.Path(opts.journalDir, s.id), opts); err != nil {
			return nil, err
		}
	}

	s.logger.Info("session created",
		"channels", len(channels),
		"population", s.engine.PopulationSize(),
		"seed", s.seed,
	)

	return s, nil
}

func newSession(channels []Channel, opts options) (*Session, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	for _, c := range channels {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}

	if err := opts.params.Validate(); err != nil {
		if errors.Is(err, distance.ErrUnsupportedKernel) {
			return nil, &ErrUnsupportedKernel{Kernel: opts.params.Kernel, cause: err}
		}
		return nil, err
	}

	seed := opts.seed
	if !opts.seedSet {
		seed = rand.Uint64()
	}

	engine, err := diffevol.New(len(channels), opts.params, diffevol.WithSeed(seed))
	if err != nil {
		return nil, translateError(err)
	}

	id := opts.runID
	if id == "" {
		id = uuid.NewString()
	}

	return &Session{
		id:        id,
		channels:  slices.Clone(channels),
		engine:    engine,
		params:    opts.params,
		seed:      seed,
		codec:     opts.codec,
		logger:    opts.logger.WithRun(id),
		metrics:   opts.metricsCollector,
		formatter: opts.formatter,
		clock:     opts.clock,
		startedAt: opts.clock(),
	}, nil
}

func (s *Session) openJournal(path string, opts options) error {
	optFns := append([]func(*journal.Options){func(o *journal.Options) {
		o.Codec = opts.codec
	}}, opts.journalOptions...)

	j, err := journal.Create(path, optFns...)
	if err != nil {
		return err
	}
	if err := j.Start(s.meta()); err != nil {
		_ = j.Close()
		return err
	}
	s.journal = j
	return nil
}

func (s *Session) meta() journal.Meta {
	return journal.Meta{
		RunID:      s.id,
		Seed:       s.seed,
		VarCount:   len(s.channels),
		Parameters: s.params,
		Channels:   toJournalChannels(s.channels),
		StartedAt:  s.startedAt,
	}
}

// ID returns the run id.
func (s *Session) ID() string { return s.id }

// Seed returns the seed of the search.
func (s *Session) Seed() uint64 { return s.seed }

// Channels returns a copy of the channel calibrations.
func (s *Session) Channels() []Channel { return slices.Clone(s.channels) }

// Parameters returns the search parameters.
func (s *Session) Parameters() diffevol.Parameters { return s.params }

// JournalPath returns the path of the journal, or "" without one.
func (s *Session) JournalPath() string {
	if s.journal == nil {
		return ""
	}
	return s.journal.Path()
}

// Stats returns a snapshot of the search progress.
func (s *Session) Stats() diffevol.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Stats()
}

// Finished reports whether the search produced its final recipe.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.final
}

// SetTarget sets the measurement the search tries to reproduce.
func (s *Session) SetTarget(target []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.journalErr != nil {
		return s.journalErr
	}
	if err := s.engine.SetTarget(target); err != nil {
		return translateError(err)
	}
	if err := s.record(func(j *journal.Journal) error { return j.Target(target) }); err != nil {
		return err
	}

	s.logger.Info("target set", "sensors", len(target))
	return nil
}

// Next returns the recipe to measure next. Calling Next again before
// Report returns the same recipe. Once the search is finished Next keeps
// returning the final recipe.
func (s *Session) Next() (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	if s.journalErr != nil {
		return Recipe{}, s.journalErr
	}

	c, err := s.engine.GetTestCandidate()
	if err != nil {
		return Recipe{}, translateError(err)
	}
	s.checkFallbacks(ctx)

	r := newRecipe(s.channels, c)

	if c.IsFinal {
		s.pending = nil
		if !s.final {
			if err := s.finish(ctx, r); err != nil {
				return Recipe{}, err
			}
		}
		return r, nil
	}

	if s.pending == nil || s.pending.Trial != c.Trial {
		s.pending = &c
		s.pendingAt = s.clock()
		s.metrics.RecordCandidate(c.Generation, false)
		s.logger.WithGeneration(c.Generation).LogCandidate(ctx, r, s.formatter(c.Vector))
	}

	return r, nil
}

func (s *Session) finish(ctx context.Context, r Recipe) error {
	if err := s.record(func(j *journal.Journal) error { return j.Final(r.Trial) }); err != nil {
		return err
	}

	s.final = true
	s.finishedAt = s.clock()

	best, _, _ := s.engine.GrandMinima()
	trials := s.engine.Stats().Trials

	s.metrics.RecordCandidate(r.Generation, true)
	s.metrics.RecordFinal(trials, best)
	s.logger.LogFinal(ctx, r, best, trials, s.finishedAt.Sub(s.startedAt))
	return nil
}

func (s *Session) checkFallbacks(ctx context.Context) {
	total := s.engine.Stats().Fallbacks
	if total > s.fallbacks {
		s.logger.LogFallback(ctx, total-s.fallbacks, total)
		s.fallbacks = total
	}
}

// Report records the measurement of the recipe last returned by Next.
func (s *Session) Report(measurement []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	if s.journalErr != nil {
		return s.journalErr
	}
	if s.final {
		return ErrFinished
	}
	if s.pending == nil {
		return ErrNoPendingCandidate
	}
	c := s.pending

	if target := s.engine.Target(); target != nil && len(measurement) != len(target) {
		err := &ErrDimensionMismatch{
			Expected: len(target),
			Actual:   len(measurement),
			cause:    distance.ErrDimensionMismatch,
		}
		s.metrics.RecordMeasurement(0, s.clock().Sub(s.pendingAt), err)
		s.logger.LogMeasurement(ctx, c.Trial, 0, false, err)
		return err
	}

	before := s.engine.Stats().Improvements

	err := s.engine.AddMeasurement(measurement)
	duration := s.clock().Sub(s.pendingAt)
	if err != nil {
		err = translateError(err)
		s.metrics.RecordMeasurement(0, duration, err)
		s.logger.LogMeasurement(ctx, c.Trial, 0, false, err)
		return err
	}

	dist := s.engine.LastDistance()
	improved := s.engine.Stats().Improvements > before

	s.metrics.RecordMeasurement(dist, duration, nil)
	if improved {
		s.metrics.RecordImprovement(c.Slot)
	}
	s.logger.LogMeasurement(ctx, c.Trial, dist, improved, nil)
	s.pending = nil

	return s.record(func(j *journal.Journal) error {
		return j.Trial(journal.Trial{
			ID:          c.Trial,
			Vector:      c.Vector,
			Measurement: measurement,
			Distance:    dist,
		})
	})
}

// record appends to the journal, if any. A failed write stops the session.
func (s *Session) record(write func(*journal.Journal) error) error {
	if s.journal == nil {
		return nil
	}
	if err := write(s.journal); err != nil {
		s.journalErr = fmt.Errorf("%w: %w", ErrJournalWrite, err)
		s.logger.Error("journal write failed; resume from the journal to continue",
			"path", s.journal.Path(), "error", err)
		return s.journalErr
	}
	return nil
}

// Close closes the journal. The session stays readable.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}

// Resume rebuilds a session from its journal at path and continues
// journaling to the same file.
//
// The run id, seed and parameters come from the journal. Channels may be
// nil to reuse the recorded calibration. Every replayed candidate must
// match the recorded one, otherwise ErrJournalDiverged is returned.
// Journal options given with WithJournal apply; its directory is ignored.
// Replayed trials are not reported to the metrics collector.
func Resume(path string, channels []Channel, optFns ...Option) (*Session, error) {
	opts := applyOptions(optFns)
	ctx := context.Background()

	entries, err := journal.ReadAll(path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 || entries[0].Type != journal.RecordStart {
		return nil, fmt.Errorf("%w: missing start record", journal.ErrCorrupted)
	}

	meta := entries[0].Meta
	if channels == nil {
		channels = fromJournalChannels(meta.Channels)
	}
	if len(channels) != meta.VarCount {
		return nil, fmt.Errorf("%w: journal has %d channels, got %d", ErrJournalDiverged, meta.VarCount, len(channels))
	}

	opts.params = meta.Parameters
	opts.seed = meta.Seed
	opts.seedSet = true
	opts.runID = meta.RunID

	s, err := newSession(channels, opts)
	if err != nil {
		return nil, err
	}
	s.startedAt = meta.StartedAt

	tmp := path + ".tmp"
	if err := s.openJournal(tmp, opts); err != nil {
		return nil, err
	}

	metrics := s.metrics
	s.metrics = NoopMetricsCollector{}
	err = s.replay(entries[1:])
	s.metrics = metrics

	if err == nil {
		err = s.journal.Rename(path)
	}
	if err != nil {
		_ = s.journal.Close()
		_ = os.Remove(tmp)
		s.logger.LogResume(ctx, path, len(entries), err)
		return nil, err
	}

	s.logger.LogResume(ctx, path, len(entries), nil)
	return s, nil
}

func (s *Session) replay(entries []journal.Entry) error {
	for _, e := range entries {
		switch e.Type {
		case journal.RecordTarget:
			if err := s.SetTarget(e.Target); err != nil {
				return err
			}
		case journal.RecordTrial:
			r, err := s.Next()
			if err != nil {
				return err
			}
			if r.Final || r.Trial != e.Trial.ID || !slices.Equal(r.Values, e.Trial.Vector) {
				return fmt.Errorf("%w: trial %d (seq %d)", ErrJournalDiverged, e.Trial.ID, e.Seq)
			}
			if err := s.Report(e.Trial.Measurement); err != nil {
				return err
			}
		case journal.RecordFinal:
			r, err := s.Next()
			if err != nil {
				return err
			}
			if !r.Final || r.Trial != e.Final {
				return fmt.Errorf("%w: final trial %d (seq %d)", ErrJournalDiverged, e.Final, e.Seq)
			}
		default:
			return fmt.Errorf("%w: unexpected %s record (seq %d)", journal.ErrCorrupted, e.Type, e.Seq)
		}
	}
	return nil
}
