package surfmat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDenseRejectsNonPositiveDimensions(t *testing.T) {
	_, err := NewDense(0, 2)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewDense(2, -1)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestSetAtRoundTrip(t *testing.T) {
	d, err := NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, d.Set(1, 2, 7))
	v, err := d.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	_, err = d.At(5, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestAddSubRejectShapeMismatch(t *testing.T) {
	a, _ := NewDense(2, 2)
	b, _ := NewDense(3, 2)

	_, err := Add(a, b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Sub(a, b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestAddSubScale(t *testing.T) {
	a, _ := NewDense(1, 2)
	_ = a.Set(0, 0, 1)
	_ = a.Set(0, 1, 2)

	b, _ := NewDense(1, 2)
	_ = b.Set(0, 0, 3)
	_ = b.Set(0, 1, 4)

	sum, err := Add(a, b)
	require.NoError(t, err)
	v0, _ := sum.At(0, 0)
	v1, _ := sum.At(0, 1)
	assert.Equal(t, 4.0, v0)
	assert.Equal(t, 6.0, v1)

	diff, err := Sub(a, b)
	require.NoError(t, err)
	v0, _ = diff.At(0, 0)
	assert.Equal(t, -2.0, v0)

	scaled := Scale(a, 10)
	v0, _ = scaled.At(0, 0)
	v1, _ = scaled.At(0, 1)
	assert.Equal(t, 10.0, v0)
	assert.Equal(t, 20.0, v1)
}

func TestMulOuterProduct(t *testing.T) {
	col, _ := NewDense(3, 1)
	_ = col.Set(0, 0, 1)
	_ = col.Set(1, 0, 2)
	_ = col.Set(2, 0, 3)

	row, _ := NewDense(1, 2)
	_ = row.Set(0, 0, 10)
	_ = row.Set(0, 1, 20)

	outer, err := Mul(col, row)
	require.NoError(t, err)
	require.Equal(t, 3, outer.Rows())
	require.Equal(t, 2, outer.Cols())

	v, _ := outer.At(1, 0)
	assert.Equal(t, 20.0, v)
	v, _ = outer.At(2, 1)
	assert.Equal(t, 60.0, v)
}

func TestMulRejectsIncompatibleShapes(t *testing.T) {
	a, _ := NewDense(2, 3)
	b, _ := NewDense(2, 2)

	_, err := Mul(a, b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
