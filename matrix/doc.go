// Package matrix provides a small fixed-size, row-major numeric container used by
// the population search.
//
// It intentionally covers only shape and elementwise operations:
//
//   - construction from flat values, a fill value or a generator function
//   - element, vector-index and selector based access (see Selector)
//   - row/column extraction and in-place replacement
//   - transpose and stacking along either axis
//   - permutation enumeration and duplicate elimination
//   - elementwise (Hadamard) arithmetic, powers and reductions
//
// There is no algebraic matrix product, inversion or decomposition. Every
// operation that produces a matrix returns a new instance; only Set, SetIndex,
// ReplaceRow and ReplaceColumn mutate the receiver.
//
// # Usage
//
//	m := matrix.Generate(2, 3, func(r, c int) float64 { return float64(r*3 + c) })
//	fmt.Println(m)
//	// 0.00    1.00    2.00
//	// 3.00    4.00    5.00
//
//	sub, _ := m.Slice(matrix.All(), matrix.Range(matrix.Start(1), matrix.End(0)))
//	sq := m.Pow(2)
package matrix
