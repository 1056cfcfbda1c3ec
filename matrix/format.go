package matrix

import (
	"strconv"
	"strings"
)

// columnDelimiter separates the elements of a row in String.
const columnDelimiter = "    "

// String renders the matrix with two decimals per element, one line per row.
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteString(columnDelimiter)
			}
			sb.WriteString(strconv.FormatFloat(float64(m.values[r*m.cols+c]), 'f', 2, 64))
		}
	}
	return sb.String()
}
