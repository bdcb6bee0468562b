package tmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/geom"
)

func TestAddControlPointSplitsTopBoundary(t *testing.T) {
	m, err := New(unitSquareCorners(), 1.0)
	require.NoError(t, err)

	var topLeft *ControlPoint
	for _, p := range m.Points() {
		if p.S() == 0 && p.T() == 1 {
			topLeft = p
		}
	}
	require.NotNil(t, topLeft)

	np, err := m.AddControlPoint(geom.New3D(0.5, 1, 0), topLeft, direction.Right, 0.5)
	require.NoError(t, err)

	assert.Equal(t, KindEdge, np.ConnectionKind(direction.Up))
	assert.Equal(t, KindTJunction, np.ConnectionKind(direction.Down))

	assert.Equal(t, KindPoint, topLeft.ConnectionKind(direction.Right))
	assert.Equal(t, np, topLeft.ConnectedPoint(direction.Right))
	assert.Equal(t, 0.5, topLeft.ConnectionKnot(direction.Right))
	assert.Equal(t, 0.5, np.ConnectionKnot(direction.Right))
}

func TestAbsolutePointInsertionInfersCenterConnections(t *testing.T) {
	m, err := New(unitSquareCorners(), 1.0)
	require.NoError(t, err)

	midpoints := []struct {
		s, t float64
	}{
		{0.5, 0}, {1, 0.5}, {0.5, 1}, {0, 0.5},
	}
	for _, mp := range midpoints {
		_, err := m.TryAddAbsolutePoint(geom.New3D(mp.s, mp.t, 0), mp.s, mp.t)
		require.NoError(t, err)
	}

	center, err := m.TryAddAbsolutePoint(geom.New3D(0.5, 0.5, 0), 0.5, 0.5)
	require.NoError(t, err)

	for _, d := range direction.All() {
		assert.Equalf(t, KindPoint, center.ConnectionKind(d), "direction %v", d)
		assert.Equalf(t, 0.5, center.ConnectionKnot(d), "direction %v", d)
	}
}

func TestTryAddAbsolutePointRejectsOutOfBounds(t *testing.T) {
	m, err := New(unitSquareCorners(), 1.0)
	require.NoError(t, err)

	_, err = m.TryAddAbsolutePoint(geom.New3D(1.5, 0.5, 0), 1.5, 0.5)
	assert.Error(t, err)
}

func TestTryAddAbsolutePointRejectsExistingPoint(t *testing.T) {
	m, err := New(unitSquareCorners(), 1.0)
	require.NoError(t, err)

	_, err = m.TryAddAbsolutePoint(geom.New3D(0, 0, 0), 0, 0)
	assert.Error(t, err)
}
