package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowColumn(t *testing.T) {
	m := Generate(2, 3, func(r, c int) float64 { return float64(r*3 + c) })

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.True(t, row.Equals(FromRow([]float64{3, 4, 5})))

	col, err := m.Column(2)
	require.NoError(t, err)
	assert.True(t, col.Equals(FromColumn([]float64{2, 5})))

	_, err = m.Row(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = m.Column(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestReplace(t *testing.T) {
	t.Run("Row", func(t *testing.T) {
		m := Filled(2, 3, 0.0)
		require.NoError(t, m.ReplaceRow(1, FromRow([]float64{1, 2, 3})))
		assert.Equal(t, []float64{0, 0, 0, 1, 2, 3}, m.Values())

		assert.ErrorIs(t, m.ReplaceRow(1, FromRow([]float64{1, 2})), ErrShapeMismatch)
		assert.ErrorIs(t, m.ReplaceRow(0, FromColumn([]float64{1, 2, 3})), ErrShapeMismatch)
		assert.ErrorIs(t, m.ReplaceRow(2, FromRow([]float64{1, 2, 3})), ErrIndexOutOfRange)
	})

	t.Run("Column", func(t *testing.T) {
		m := Filled(2, 3, 0.0)
		require.NoError(t, m.ReplaceColumn(2, FromColumn([]float64{7, 8})))
		assert.Equal(t, []float64{0, 0, 7, 0, 0, 8}, m.Values())

		assert.ErrorIs(t, m.ReplaceColumn(0, FromRow([]float64{7, 8})), ErrShapeMismatch)
		assert.ErrorIs(t, m.ReplaceColumn(0, FromColumn([]float64{7, 8, 9})), ErrShapeMismatch)
		assert.ErrorIs(t, m.ReplaceColumn(3, FromColumn([]float64{7, 8})), ErrIndexOutOfRange)
	})
}

func TestTranspose(t *testing.T) {
	m := Generate(2, 3, func(r, c int) float64 { return float64(r*3 + c) })
	tr := m.Transpose()
	assert.Equal(t, 3, tr.Rows())
	assert.Equal(t, 2, tr.Cols())
	assert.Equal(t, []float64{0, 3, 1, 4, 2, 5}, tr.Values())

	for _, mm := range []*Matrix[float64]{m, New[float64](), FromRow([]float64{1, 2}), Filled(1, 1, 4.0)} {
		assert.True(t, mm.Transpose().Transpose().Equals(mm))
	}
}

func TestStack(t *testing.T) {
	m := Generate(3, 2, func(r, c int) float64 { return float64(r*2 + c) })

	t.Run("ColumnsOfRowTwice", func(t *testing.T) {
		for i := 0; i < m.Rows(); i++ {
			row, err := m.Row(i)
			require.NoError(t, err)
			s, err := StackColumns(row, row)
			require.NoError(t, err)
			assert.Equal(t, 2*row.Cols(), s.Cols())
			assert.Equal(t, 1, s.Rows())
			assert.Equal(t, append(row.Values(), row.Values()...), s.Values())
		}
	})

	t.Run("Columns", func(t *testing.T) {
		s, err := StackColumns(m, FromColumn([]float64{9, 9, 9}))
		require.NoError(t, err)
		assert.Equal(t, 3, s.Cols())
		assert.Equal(t, []float64{0, 1, 9, 2, 3, 9, 4, 5, 9}, s.Values())

		_, err = StackColumns(m, FromColumn([]float64{9, 9}))
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("Rows", func(t *testing.T) {
		s, err := StackRows(m, FromRow([]float64{9, 8}))
		require.NoError(t, err)
		assert.Equal(t, 4, s.Rows())
		assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 9, 8}, s.Values())

		_, err = StackRows(m, FromRow([]float64{9}))
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("EmptyIsIdentity", func(t *testing.T) {
		s, err := StackColumns(New[float64](), m)
		require.NoError(t, err)
		assert.True(t, s.Equals(m))

		s, err = StackRows(m, New[float64]())
		require.NoError(t, err)
		assert.True(t, s.Equals(m))
	})
}
