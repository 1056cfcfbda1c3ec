package matrix

import "fmt"

// Row returns a copy of row i as a 1xN matrix.
func (m *Matrix[T]) Row(i int) (*Matrix[T], error) {
	if i < 0 || i >= m.rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i, m.rows)
	}
	return m.Slice(Index(i), All())
}

// Column returns a copy of column i as an Nx1 matrix.
func (m *Matrix[T]) Column(i int) (*Matrix[T], error) {
	if i < 0 || i >= m.cols {
		return nil, fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, i, m.cols)
	}
	return m.Slice(All(), Index(i))
}

// ReplaceRow overwrites row i with the single row r.
func (m *Matrix[T]) ReplaceRow(i int, r *Matrix[T]) error {
	if i < 0 || i >= m.rows {
		return fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i, m.rows)
	}
	if r.rows != 1 || r.cols != m.cols {
		return shapeError("replace row", m, r)
	}
	copy(m.values[i*m.cols:(i+1)*m.cols], r.values)
	return nil
}

// ReplaceColumn overwrites column i with the single column c.
func (m *Matrix[T]) ReplaceColumn(i int, c *Matrix[T]) error {
	if i < 0 || i >= m.cols {
		return fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, i, m.cols)
	}
	if c.cols != 1 || c.rows != m.rows {
		return shapeError("replace column", m, c)
	}
	for r := 0; r < m.rows; r++ {
		m.values[r*m.cols+i] = c.values[r]
	}
	return nil
}

// Transpose returns a copy with rows and columns swapped.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	return Generate(m.cols, m.rows, func(r, c int) T {
		return m.values[c*m.cols+r]
	})
}

// StackColumns places the columns of b to the right of the columns of a.
// Both must have the same number of rows; an empty operand is the identity.
func StackColumns[T Float](a, b *Matrix[T]) (*Matrix[T], error) {
	switch {
	case a.IsEmpty():
		return b.Copy(), nil
	case b.IsEmpty():
		return a.Copy(), nil
	case a.rows != b.rows:
		return nil, shapeError("stack columns", a, b)
	}
	return Generate(a.rows, a.cols+b.cols, func(r, c int) T {
		if c < a.cols {
			return a.values[r*a.cols+c]
		}
		return b.values[r*b.cols+c-a.cols]
	}), nil
}

// StackRows places the rows of b below the rows of a.
// Both must have the same number of columns; an empty operand is the identity.
func StackRows[T Float](a, b *Matrix[T]) (*Matrix[T], error) {
	switch {
	case a.IsEmpty():
		return b.Copy(), nil
	case b.IsEmpty():
		return a.Copy(), nil
	case a.cols != b.cols:
		return nil, shapeError("stack rows", a, b)
	}
	values := make([]T, 0, len(a.values)+len(b.values))
	values = append(values, a.values...)
	values = append(values, b.values...)
	return &Matrix[T]{rows: a.rows + b.rows, cols: a.cols, values: values}, nil
}
