package meshgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfacekit/tspline/examples"
)

func TestToCoreGraphHasOneVertexPerControlPoint(t *testing.T) {
	m, err := examples.UnitSquare()
	require.NoError(t, err)

	g := ToCoreGraph(m)
	assert.Len(t, g.Vertices(), m.Len())
}

func TestReachableCoversWholeUnitSquare(t *testing.T) {
	m, err := examples.UnitSquare()
	require.NoError(t, err)

	reached, err := Reachable(m, 0)
	require.NoError(t, err)
	assert.Len(t, reached, m.Len())
}

func TestReachableCoversSaddleGridAfterConstruction(t *testing.T) {
	m, err := examples.SaddleGrid(1.0)
	require.NoError(t, err)

	reached, err := Reachable(m, 0)
	require.NoError(t, err)
	assert.Len(t, reached, m.Len(), "every control point stays connected after construction")
}

func TestAdjacencyMatrixIsSymmetric(t *testing.T) {
	m, err := examples.UnitSquare()
	require.NoError(t, err)

	mat := AdjacencyMatrix(m)
	require.Len(t, mat, m.Len())

	for i := range mat {
		for j := range mat[i] {
			assert.Equal(t, mat[i][j], mat[j][i], "connection weight must be symmetric")
		}
	}
}
