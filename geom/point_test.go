package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSub(t *testing.T) {
	p := New3D(1, 2, 3)
	v := New3D(1, 1, 1)

	got := Add(p, v)
	assert.Equal(t, New3D(2, 3, 4), got)

	diff := Sub(got, p)
	assert.Equal(t, v, diff)
}

func TestScale(t *testing.T) {
	v := New3D(1, -2, 3)
	assert.Equal(t, New3D(2, -4, 6), Scale(2, v))
}

func TestDotAndCross(t *testing.T) {
	x := New3D(1, 0, 0)
	y := New3D(0, 1, 0)

	assert.Equal(t, 0.0, Dot(x, y))
	assert.Equal(t, New3D(0, 0, 1), Cross(x, y))
}

func TestNorm(t *testing.T) {
	assert.Equal(t, 5.0, Norm(New3D(3, 4, 0)))
}

func TestDistSquaredAndApproxEqual(t *testing.T) {
	a := New3D(0, 0, 0)
	b := New3D(3, 4, 0)

	assert.Equal(t, 25.0, DistSquared(a, b))
	assert.False(t, ApproxEqual(a, b, 1e-6))
	assert.True(t, ApproxEqual(a, New3D(1e-9, 0, 0), 1e-6))
}

func TestZero(t *testing.T) {
	assert.True(t, Zero(New3D(0, 0, 0), 1e-9))
	assert.True(t, Zero(New3D(1e-12, -1e-12, 0), 1e-9))
	assert.False(t, Zero(New3D(0.1, 0, 0), 1e-9))
}

func TestNew2DLeavesZAtZero(t *testing.T) {
	p := New2D(1, 2)
	assert.Equal(t, 0.0, p.Z)
}
