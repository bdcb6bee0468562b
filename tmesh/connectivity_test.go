package tmesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/examples"
	"github.com/surfacekit/tspline/geom"
	"github.com/surfacekit/tspline/meshgraph"
	"github.com/surfacekit/tspline/surface"
	"github.com/surfacekit/tspline/tmesh"
)

// assertFullyReachable asserts that every control point in m is reachable
// from its first point, i.e. that the mutation under test left no control
// point orphaned from the rest of the mesh's connection graph.
func assertFullyReachable(t *testing.T, m *tmesh.Mesh) {
	t.Helper()
	reached, err := meshgraph.Reachable(m, 0)
	require.NoError(t, err)
	assert.Len(t, reached, m.Len(), "every control point must stay reachable from the first")
}

// Scenario 1: unit-square construction.
func TestReachableAfterUnitSquareConstruction(t *testing.T) {
	m, err := examples.UnitSquare()
	require.NoError(t, err)
	assertFullyReachable(t, m)
}

// Scenario 2: add_control_point splitting the top boundary.
func TestReachableAfterAddControlPointSplitsTopBoundary(t *testing.T) {
	m, err := examples.UnitSquare()
	require.NoError(t, err)

	var topLeft *tmesh.ControlPoint
	for _, p := range m.Points() {
		if p.S() == 0 && p.T() == 1 {
			topLeft = p
		}
	}
	require.NotNil(t, topLeft)

	_, err = m.AddControlPoint(geom.New3D(0.5, 1, 0), topLeft, direction.Right, 0.5)
	require.NoError(t, err)

	assertFullyReachable(t, m)
}

// Scenario 3: four mid-edge points plus a center, via try_add_absolute_point.
func TestReachableAfterAbsolutePointCenterInsertion(t *testing.T) {
	m, err := examples.UnitSquare()
	require.NoError(t, err)

	midpoints := []struct{ s, t float64 }{
		{0.5, 0}, {1, 0.5}, {0.5, 1}, {0, 0.5},
	}
	for _, mp := range midpoints {
		_, err := m.TryAddAbsolutePoint(geom.New3D(mp.s, mp.t, 0), mp.s, mp.t)
		require.NoError(t, err)
	}

	_, err = m.TryAddAbsolutePoint(geom.New3D(0.5, 0.5, 0), 0.5, 0.5)
	require.NoError(t, err)

	assertFullyReachable(t, m)
}

// Scenario 4: saddle mesh refined at an interior point via refine_at.
func TestReachableAfterRefineAtOnSaddleMesh(t *testing.T) {
	m, err := examples.SaddleGrid(1.0)
	require.NoError(t, err)

	_, err = m.RefineAt(0.3, 0.3)
	require.NoError(t, err)

	assertFullyReachable(t, m)
}

// Scenario 5: saddle mesh refined adaptively via adaptive_refine.
func TestReachableAfterAdaptiveRefineOnSaddleMesh(t *testing.T) {
	m, err := examples.SaddleGrid(4.0)
	require.NoError(t, err)

	_, err = surface.AdaptiveRefine(m, 0.1, 2, 5)
	require.NoError(t, err)

	assertFullyReachable(t, m)
}

// Scenario 6: plus-shaped mesh whose ray cast detours around its T-junction.
func TestReachableOnPlusShapedMesh(t *testing.T) {
	m, err := examples.PlusShaped()
	require.NoError(t, err)
	assertFullyReachable(t, m)
}
