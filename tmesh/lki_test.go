package tmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/geom"
)

func buildTwoByFourGrid(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewGrid(2, 4, 0.5, func(r, c int) geom.Point {
		return geom.New3D(float64(c)*0.5, float64(r)*0.5, 0)
	})
	require.NoError(t, err)
	return m
}

func pointAt(t *testing.T, m *Mesh, s, t2 float64) *ControlPoint {
	t.Helper()
	for _, p := range m.Points() {
		if p.S() == s && p.T() == t2 {
			return p
		}
	}
	require.Fail(t, "no point at requested coordinate")
	return nil
}

func TestLocalKnotInsertionSplitsTheConnection(t *testing.T) {
	m := buildTwoByFourGrid(t)

	p := pointAt(t, m, 0.5, 0)
	n1 := pointAt(t, m, 1.0, 0)

	np, err := m.TryLocalKnotInsertion(p, direction.Right, 0.5)
	require.NoError(t, err)

	assert.Equal(t, KindPoint, p.ConnectionKind(direction.Right))
	assert.Equal(t, np, p.ConnectedPoint(direction.Right))
	assert.Equal(t, np, n1.ConnectedPoint(direction.Left))
}

func TestLocalKnotInsertionRejectsOutOfRangeRatio(t *testing.T) {
	m := buildTwoByFourGrid(t)
	p := pointAt(t, m, 0.5, 0)

	_, err := m.TryLocalKnotInsertion(p, direction.Right, 1.5)
	assert.Error(t, err)
}

func TestAbsoluteLocalKnotInsertionDerivesRatioFromTarget(t *testing.T) {
	m := buildFourByFourGrid(t)
	p := pointAt(t, m, 0.5, 0)

	np, err := m.TryAbsoluteLocalKnotInsertion(p, direction.Right, 0.75)
	require.NoError(t, err)
	assert.Equal(t, KindPoint, p.ConnectionKind(direction.Right))
	assert.Equal(t, np, p.ConnectedPoint(direction.Right))
}

func TestLocalKnotInsertionRequiresFourInARow(t *testing.T) {
	m := buildTwoByFourGrid(t)
	// The rightmost column has no further neighbour to the right, so a
	// four-in-a-row window cannot be formed from it.
	last := pointAt(t, m, 1.5, 0)

	_, err := m.TryLocalKnotInsertion(last, direction.Right, 0.5)
	assert.Error(t, err)
}
