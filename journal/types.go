package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/odorsearch/codec"
	"github.com/hupe1980/odorsearch/diffevol"
)

var (
	// ErrCorrupted is returned when a record fails its checksum or is malformed.
	ErrCorrupted = errors.New("journal: corrupted record")

	// ErrInvalidHeader is returned when a file is not a journal.
	ErrInvalidHeader = errors.New("journal: invalid header")

	// ErrClosed is returned when appending to a closed journal.
	ErrClosed = errors.New("journal: closed")
)

// RecordType identifies the type of a journal record.
type RecordType uint8

const (
	// RecordStart carries the run metadata. It is the first record.
	RecordStart RecordType = iota + 1
	// RecordTarget carries the target measurement.
	RecordTarget
	// RecordTrial carries one measured trial.
	RecordTrial
	// RecordFinal marks the end of the search and names the best trial.
	RecordFinal
)

// String returns the string representation of the record type.
func (t RecordType) String() string {
	switch t {
	case RecordStart:
		return "Start"
	case RecordTarget:
		return "Target"
	case RecordTrial:
		return "Trial"
	case RecordFinal:
		return "Final"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Channel is the calibration of one odor channel as recorded in the journal.
type Channel struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Meta describes a run. Replaying requires the same seed, parameters and
// variable count to regenerate identical candidates.
type Meta struct {
	RunID      string              `json:"runId"`
	Seed       uint64              `json:"seed"`
	VarCount   int                 `json:"varCount"`
	Parameters diffevol.Parameters `json:"parameters"`
	Channels   []Channel           `json:"channels"`
	StartedAt  time.Time           `json:"startedAt"`
}

// Trial is one measured candidate.
type Trial struct {
	ID          int
	Vector      []float64
	Measurement []float64
	Distance    float64
}

// Entry is a decoded journal record. Only the field matching Type is set.
type Entry struct {
	Type RecordType
	Seq  uint64

	Meta   Meta
	Target []float64
	Trial  Trial
	// Final is the id of the best trial.
	Final int
}

// Options contains configuration for a journal.
type Options struct {
	// Compress enables zstd compression of the record stream.
	Compress bool

	// CompressionLevel sets the zstd compression level (1-22).
	CompressionLevel int

	// Sync fsyncs after every record. Without it records are flushed to the
	// OS but may be lost on power failure.
	Sync bool

	// Codec encodes the run metadata. The codec name is stored in the header.
	Codec codec.Codec
}

// DefaultOptions returns default journal options.
var DefaultOptions = Options{
	Compress:         false,
	CompressionLevel: 3,
	Sync:             true,
	Codec:            codec.Default,
}
