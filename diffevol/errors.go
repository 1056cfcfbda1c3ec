package diffevol

import "errors"

var (
	// ErrInvalidVarCount is returned when the number of search dimensions is < 1.
	ErrInvalidVarCount = errors.New("diffevol: variable count must be positive")

	// ErrInvalidParameters is returned when Parameters fail validation.
	ErrInvalidParameters = errors.New("diffevol: invalid parameters")

	// ErrTargetNotSet is returned by AddMeasurement before SetTarget.
	ErrTargetNotSet = errors.New("diffevol: target not set")

	// ErrTargetAlreadySet is returned when SetTarget is called twice.
	ErrTargetAlreadySet = errors.New("diffevol: target already set")

	// ErrEmptyTarget is returned when SetTarget receives no values.
	ErrEmptyTarget = errors.New("diffevol: empty target")

	// ErrFinished is returned by AddMeasurement once a final candidate was produced.
	ErrFinished = errors.New("diffevol: search finished")

	// ErrInvalidMeasurement is returned by AddMeasurement for measurements
	// containing NaN or infinite values, or yielding a non-finite distance.
	ErrInvalidMeasurement = errors.New("diffevol: measurement is not finite")

	// ErrNoCandidate is returned by AddMeasurement when the candidate of the
	// next generation has not been requested yet.
	ErrNoCandidate = errors.New("diffevol: no candidate requested")
)
