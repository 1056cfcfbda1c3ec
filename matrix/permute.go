package matrix

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Direction selects the axis RemoveDuplicates works along.
type Direction int

const (
	// ByRows treats every row as one item.
	ByRows Direction = iota
	// ByColumns treats every column as one item.
	ByColumns
)

func (d Direction) String() string {
	switch d {
	case ByRows:
		return "Rows"
	case ByColumns:
		return "Columns"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// Permutate returns a matrix whose rows are every ordering of the elements of
// the vector v, in lexicographic order of element positions. Repeated elements
// produce repeated rows; use RemoveDuplicates to collapse them.
func Permutate[T Float](v *Matrix[T]) (*Matrix[T], error) {
	if !v.IsVector() {
		return nil, fmt.Errorf("%w: permutate on %dx%d", ErrInvalidOperation, v.rows, v.cols)
	}

	n := len(v.values)
	count := 1
	for i := 2; i <= n; i++ {
		count *= i
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	values := make([]T, 0, count*n)
	for {
		for _, i := range idx {
			values = append(values, v.values[i])
		}
		if !nextPermutation(idx) {
			break
		}
	}
	return &Matrix[T]{rows: count, cols: n, values: values}, nil
}

// nextPermutation advances idx to its lexicographic successor.
// It returns false once idx is the last permutation.
func nextPermutation(idx []int) bool {
	i := len(idx) - 2
	for i >= 0 && idx[i] >= idx[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(idx) - 1
	for idx[j] <= idx[i] {
		j--
	}
	idx[i], idx[j] = idx[j], idx[i]
	for l, r := i+1, len(idx)-1; l < r; l, r = l+1, r-1 {
		idx[l], idx[r] = idx[r], idx[l]
	}
	return true
}

// RemoveDuplicates returns a copy without repeated rows (ByRows) or columns
// (ByColumns). The first occurrence of each is kept in its original order.
func (m *Matrix[T]) RemoveDuplicates(dir Direction) *Matrix[T] {
	if dir == ByColumns {
		return m.Transpose().RemoveDuplicates(ByRows).Transpose()
	}
	if m.IsEmpty() {
		return New[T]()
	}

	seen := make(map[string]struct{}, m.rows)
	values := make([]T, 0, len(m.values))
	rows := 0
	for r := 0; r < m.rows; r++ {
		row := m.values[r*m.cols : (r+1)*m.cols]
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, row...)
		rows++
	}
	return &Matrix[T]{rows: rows, cols: m.cols, values: values}
}

// rowKey encodes values so that equal rows map to equal keys.
func rowKey[T Float](row []T) string {
	buf := make([]byte, 8*len(row))
	for i, v := range row {
		f := float64(v)
		if f == 0 {
			f = 0 // fold -0 into +0
		}
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return string(buf)
}
