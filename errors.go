package odorsearch

import (
	"errors"
	"fmt"

	"github.com/hupe1980/odorsearch/diffevol"
	"github.com/hupe1980/odorsearch/distance"
)

var (
	// ErrNoChannels is returned when a session is created without channels.
	ErrNoChannels = errors.New("at least one channel is required")

	// ErrInvalidChannel is returned for channels with an unusable calibration.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrNoPendingCandidate is returned by Report when Next was not called first.
	ErrNoPendingCandidate = errors.New("no pending candidate")

	// ErrJournalDiverged is returned by Resume when a regenerated candidate
	// differs from the recorded one.
	ErrJournalDiverged = errors.New("journal diverged from search")

	// ErrJournalWrite is returned once a journal write failed. The session
	// refuses further calls; Resume the journal to continue.
	ErrJournalWrite = errors.New("journal write failed")

	// ErrInvalidMeasurement is returned by Report for measurements with NaN or
	// infinite values. The recipe stays pending.
	ErrInvalidMeasurement = diffevol.ErrInvalidMeasurement

	// ErrTrialBudgetExceeded is returned by Run when WithMaxTrials is reached.
	ErrTrialBudgetExceeded = errors.New("trial budget exceeded")

	// ErrFinished is returned by Report once a final recipe was produced.
	ErrFinished = diffevol.ErrFinished

	// ErrTargetNotSet is returned by Report before SetTarget.
	ErrTargetNotSet = diffevol.ErrTargetNotSet

	// ErrTargetAlreadySet is returned when SetTarget is called twice.
	ErrTargetAlreadySet = diffevol.ErrTargetAlreadySet

	// ErrInvalidParameters is returned for out-of-range search parameters.
	ErrInvalidParameters = diffevol.ErrInvalidParameters
)

// ErrDimensionMismatch indicates a measurement with a different number of
// sensor values than the target.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrUnsupportedKernel indicates a distance kernel without an implementation.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnsupportedKernel struct {
	Kernel distance.Kernel
	cause  error
}

func (e *ErrUnsupportedKernel) Error() string {
	return fmt.Sprintf("unsupported kernel: %s", e.Kernel)
}

func (e *ErrUnsupportedKernel) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, diffevol.ErrInvalidVarCount) {
		return fmt.Errorf("%w: %w", ErrNoChannels, err)
	}
	if errors.Is(err, diffevol.ErrNoCandidate) {
		return fmt.Errorf("%w: %w", ErrNoPendingCandidate, err)
	}

	return err
}
