package matrix

import (
	"fmt"
	"slices"
)

// Float is the element constraint of Matrix.
type Float interface {
	~float32 | ~float64
}

// Matrix is a dense rows x cols matrix stored in row-major order.
//
// A 0x0 matrix is empty. A matrix with one row is a row, one with one column is a
// column, and either of them with at least one element is a vector. There is no
// separate scalar notion: a 1x1 matrix is simply a (row and column) vector.
type Matrix[T Float] struct {
	rows   int
	cols   int
	values []T
}

// New returns an empty matrix.
func New[T Float]() *Matrix[T] {
	return &Matrix[T]{}
}

// FromRow returns a 1xN matrix holding a copy of values.
// An empty slice yields an empty matrix.
func FromRow[T Float](values []T) *Matrix[T] {
	if len(values) == 0 {
		return New[T]()
	}
	return &Matrix[T]{rows: 1, cols: len(values), values: slices.Clone(values)}
}

// FromColumn returns an Nx1 matrix holding a copy of values.
// An empty slice yields an empty matrix.
func FromColumn[T Float](values []T) *Matrix[T] {
	if len(values) == 0 {
		return New[T]()
	}
	return &Matrix[T]{rows: len(values), cols: 1, values: slices.Clone(values)}
}

// FromValues returns a rows x cols matrix filled from the row-major slice values.
// It fails with ErrShapeMismatch if len(values) != rows*cols.
func FromValues[T Float](rows, cols int, values []T) (*Matrix[T], error) {
	if rows < 0 || cols < 0 || rows*cols != len(values) {
		return nil, fmt.Errorf("%w: %dx%d requires %d values, got %d", ErrShapeMismatch, rows, cols, max(rows*cols, 0), len(values))
	}
	if len(values) == 0 {
		return New[T](), nil
	}
	return &Matrix[T]{rows: rows, cols: cols, values: slices.Clone(values)}, nil
}

// Filled returns a rows x cols matrix with every cell set to v.
func Filled[T Float](rows, cols int, v T) *Matrix[T] {
	return Generate(rows, cols, func(int, int) T { return v })
}

// Generate returns a rows x cols matrix whose cell (r, c) is fn(r, c).
// Non-positive dimensions yield an empty matrix.
func Generate[T Float](rows, cols int, fn func(row, col int) T) *Matrix[T] {
	if rows <= 0 || cols <= 0 {
		return New[T]()
	}
	m := &Matrix[T]{rows: rows, cols: cols, values: make([]T, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.values[r*cols+c] = fn(r, c)
		}
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// Len returns the number of elements.
func (m *Matrix[T]) Len() int { return len(m.values) }

// IsEmpty reports whether the matrix is 0x0.
func (m *Matrix[T]) IsEmpty() bool { return m.rows == 0 && m.cols == 0 }

// IsRow reports whether the matrix has exactly one row.
func (m *Matrix[T]) IsRow() bool { return m.rows == 1 }

// IsColumn reports whether the matrix has exactly one column.
func (m *Matrix[T]) IsColumn() bool { return m.cols == 1 }

// IsVector reports whether the matrix is a non-empty row or column.
func (m *Matrix[T]) IsVector() bool {
	return (m.IsRow() || m.IsColumn()) && len(m.values) > 0
}

// Values returns a copy of the row-major values.
func (m *Matrix[T]) Values() []T {
	return slices.Clone(m.values)
}

// Copy returns a deep, independent clone.
func (m *Matrix[T]) Copy() *Matrix[T] {
	return &Matrix[T]{rows: m.rows, cols: m.cols, values: slices.Clone(m.values)}
}

// At returns the element at (row, col).
func (m *Matrix[T]) At(row, col int) (T, error) {
	if err := m.checkCell(row, col); err != nil {
		return 0, err
	}
	return m.values[row*m.cols+col], nil
}

// Set assigns the element at (row, col).
func (m *Matrix[T]) Set(row, col int, v T) error {
	if err := m.checkCell(row, col); err != nil {
		return err
	}
	m.values[row*m.cols+col] = v
	return nil
}

// AtIndex returns the i-th element of a vector.
// It fails with ErrInvalidOperation if the matrix is not a vector.
func (m *Matrix[T]) AtIndex(i int) (T, error) {
	if err := m.checkVectorIndex(i); err != nil {
		return 0, err
	}
	return m.values[i], nil
}

// SetIndex assigns the i-th element of a vector.
func (m *Matrix[T]) SetIndex(i int, v T) error {
	if err := m.checkVectorIndex(i); err != nil {
		return err
	}
	m.values[i] = v
	return nil
}

func (m *Matrix[T]) checkCell(row, col int) error {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfRange, row, col, m.rows, m.cols)
	}
	return nil
}

func (m *Matrix[T]) checkVectorIndex(i int) error {
	if !m.IsVector() {
		return fmt.Errorf("%w: single index access on %dx%d", ErrInvalidOperation, m.rows, m.cols)
	}
	if i < 0 || i >= len(m.values) {
		return fmt.Errorf("%w: %d in vector of length %d", ErrIndexOutOfRange, i, len(m.values))
	}
	return nil
}

func (m *Matrix[T]) sameShape(o *Matrix[T]) bool {
	return m.rows == o.rows && m.cols == o.cols
}

func shapeError[T Float](op string, a, b *Matrix[T]) error {
	return fmt.Errorf("%w: %s %dx%d with %dx%d", ErrShapeMismatch, op, a.rows, a.cols, b.rows, b.cols)
}
