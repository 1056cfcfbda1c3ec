package matrix

import "fmt"

// Bound is one end of a Range selector, counted either from the start or back
// from the end of an axis.
type Bound struct {
	offset  int
	fromEnd bool
}

// Start returns a bound offset positions after the start of the axis.
func Start(offset int) Bound {
	return Bound{offset: offset}
}

// End returns a bound offset positions before the end of the axis.
// End(0) is the axis length.
func End(offset int) Bound {
	return Bound{offset: offset, fromEnd: true}
}

func (b Bound) resolve(length int) int {
	if b.fromEnd {
		return length - b.offset
	}
	return b.offset
}

type selectorKind uint8

const (
	selectAll selectorKind = iota
	selectIndex
	selectRange
)

// Selector picks a subset of one axis: the whole axis, a single index or a
// half-open range [from, to).
type Selector struct {
	kind  selectorKind
	index int
	from  Bound
	to    Bound
}

// All selects the whole axis.
func All() Selector {
	return Selector{kind: selectAll}
}

// Index selects a single position.
func Index(i int) Selector {
	return Selector{kind: selectIndex, index: i}
}

// Range selects the half-open range [from, to).
func Range(from, to Bound) Selector {
	return Selector{kind: selectRange, from: from, to: to}
}

func (s Selector) String() string {
	switch s.kind {
	case selectAll:
		return "all"
	case selectIndex:
		return fmt.Sprintf("%d", s.index)
	default:
		return fmt.Sprintf("%s:%s", s.from, s.to)
	}
}

func (b Bound) String() string {
	if b.fromEnd {
		return fmt.Sprintf("^%d", b.offset)
	}
	return fmt.Sprintf("%d", b.offset)
}

// resolve maps the selector onto an axis of the given length.
func (s Selector) resolve(length int) (lo, hi int, err error) {
	switch s.kind {
	case selectAll:
		return 0, length, nil
	case selectIndex:
		if s.index < 0 || s.index >= length {
			return 0, 0, fmt.Errorf("%w: index %d on axis of length %d", ErrIndexOutOfRange, s.index, length)
		}
		return s.index, s.index + 1, nil
	default:
		lo, hi = s.from.resolve(length), s.to.resolve(length)
		if lo < 0 || hi > length || lo > hi {
			return 0, 0, fmt.Errorf("%w: range %s on axis of length %d", ErrIndexOutOfRange, s, length)
		}
		return lo, hi, nil
	}
}

// Slice returns a new matrix made of the selected rows and columns.
// Selecting a single row or column keeps the orthogonal dimension intact.
// A selection without elements yields an empty matrix.
func (m *Matrix[T]) Slice(rows, cols Selector) (*Matrix[T], error) {
	r0, r1, err := rows.resolve(m.rows)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	c0, c1, err := cols.resolve(m.cols)
	if err != nil {
		return nil, fmt.Errorf("cols: %w", err)
	}
	return Generate(r1-r0, c1-c0, func(r, c int) T {
		return m.values[(r0+r)*m.cols+c0+c]
	}), nil
}
