package matrix

import "math"

// Add returns the elementwise sum m + o.
func (m *Matrix[T]) Add(o *Matrix[T]) (*Matrix[T], error) {
	return m.zip("add", o, func(a, b T) T { return a + b })
}

// Sub returns the elementwise difference m - o.
func (m *Matrix[T]) Sub(o *Matrix[T]) (*Matrix[T], error) {
	return m.zip("sub", o, func(a, b T) T { return a - b })
}

// Mul returns the elementwise (Hadamard) product of m and o.
// This is not an algebraic matrix product.
func (m *Matrix[T]) Mul(o *Matrix[T]) (*Matrix[T], error) {
	return m.zip("mul", o, func(a, b T) T { return a * b })
}

// Div returns the elementwise quotient m / o.
func (m *Matrix[T]) Div(o *Matrix[T]) (*Matrix[T], error) {
	return m.zip("div", o, func(a, b T) T { return a / b })
}

// AddScalar adds s to every element.
func (m *Matrix[T]) AddScalar(s T) *Matrix[T] {
	return m.Apply(func(v T) T { return v + s })
}

// SubScalar subtracts s from every element.
func (m *Matrix[T]) SubScalar(s T) *Matrix[T] {
	return m.Apply(func(v T) T { return v - s })
}

// MulScalar multiplies every element by s.
func (m *Matrix[T]) MulScalar(s T) *Matrix[T] {
	return m.Apply(func(v T) T { return v * s })
}

// DivScalar divides every element by s.
func (m *Matrix[T]) DivScalar(s T) *Matrix[T] {
	return m.Apply(func(v T) T { return v / s })
}

// Pow raises every element to the power n.
func (m *Matrix[T]) Pow(n float64) *Matrix[T] {
	return m.Apply(func(v T) T { return T(math.Pow(float64(v), n)) })
}

// Apply returns a matrix of the same shape with fn applied to every element.
func (m *Matrix[T]) Apply(fn func(v T) T) *Matrix[T] {
	out := m.Copy()
	for i, v := range out.values {
		out.values[i] = fn(v)
	}
	return out
}

func (m *Matrix[T]) zip(op string, o *Matrix[T], fn func(a, b T) T) (*Matrix[T], error) {
	if !m.sameShape(o) {
		return nil, shapeError(op, m, o)
	}
	out := m.Copy()
	for i := range out.values {
		out.values[i] = fn(m.values[i], o.values[i])
	}
	return out, nil
}

// Sum returns the sum of all elements.
func (m *Matrix[T]) Sum() T {
	var sum T
	for _, v := range m.values {
		sum += v
	}
	return sum
}

// Mean returns the arithmetic mean of all elements, or 0 for an empty matrix.
func (m *Matrix[T]) Mean() T {
	if len(m.values) == 0 {
		return 0
	}
	return m.Sum() / T(len(m.values))
}

// All reports whether pred holds for every element.
func (m *Matrix[T]) All(pred func(v T) bool) bool {
	for _, v := range m.values {
		if !pred(v) {
			return false
		}
	}
	return true
}

// Equals reports whether o has the same shape and exactly the same values.
func (m *Matrix[T]) Equals(o *Matrix[T]) bool {
	if o == nil || !m.sameShape(o) {
		return false
	}
	for i, v := range m.values {
		if v != o.values[i] {
			return false
		}
	}
	return true
}
