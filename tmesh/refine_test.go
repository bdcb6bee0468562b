package tmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfacekit/tspline/geom"
)

func buildFourByFourGrid(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewGrid(4, 4, 0.5, func(r, c int) geom.Point {
		return geom.New3D(float64(c)*0.5, float64(r)*0.5, 0)
	})
	require.NoError(t, err)
	return m
}

func TestRefineAtBuildsMissingColumnBeforeInserting(t *testing.T) {
	m := buildFourByFourGrid(t)
	before := m.Len()

	// (0.75, 0.75) falls strictly inside the interior span between the
	// second and third knot line on both axes, so the column/row built to
	// reach it has a genuine back neighbour on every anchor.
	_, err := m.RefineAt(0.75, 0.75)
	require.NoError(t, err)
	assert.Greater(t, m.Len(), before)
}

func TestSubdivideAddsControlPoints(t *testing.T) {
	m := buildTwoByFourGrid(t)
	before := m.Len()

	err := m.Subdivide()
	require.NoError(t, err)
	assert.Greater(t, m.Len(), before)
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	m := buildTwoByFourGrid(t)
	clone := m.Clone()

	require.Equal(t, m.Len(), clone.Len())

	_, err := m.RefineAt(0.75, 0)
	require.NoError(t, err)

	assert.NotEqual(t, m.Len(), clone.Len(), "mutating the original must not affect the clone")
}

func TestCloseEmptiesTheMesh(t *testing.T) {
	m := buildTwoByFourGrid(t)
	require.Greater(t, m.Len(), 0)

	m.Close()
	assert.Equal(t, 0, m.Len())
}

func TestSnapshotRestoreRoundTrips(t *testing.T) {
	m := buildTwoByFourGrid(t)
	snapshot := m.Snapshot()
	before := m.Len()

	_, err := m.RefineAt(0.75, 0)
	require.NoError(t, err)
	require.Greater(t, m.Len(), before)

	m.Restore(snapshot)
	assert.Equal(t, before, m.Len())
}
