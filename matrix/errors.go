package matrix

import "errors"

var (
	// ErrShapeMismatch is returned when operand shapes disagree.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")

	// ErrIndexOutOfRange is returned for an invalid row, column or vector index.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")

	// ErrInvalidOperation is returned when an operation does not apply to the
	// matrix, e.g. single-index access on a matrix that is not a vector.
	ErrInvalidOperation = errors.New("matrix: invalid operation")
)
