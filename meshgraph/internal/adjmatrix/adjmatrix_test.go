package adjmatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfacekit/tspline/meshgraph/internal/graphcore"
)

func TestBuildOrdersRowsByAscendingVertexID(t *testing.T) {
	g := graphcore.New()
	g.AddEdge(5, 1, 2.0)
	g.AddVertex(3)

	mat, index := Build(g)
	require.Equal(t, []int{1, 3, 5}, index)
	require.Len(t, mat, 3)

	// index[0]=1, index[2]=5, so mat[0][2] holds the 1<->5 weight.
	assert.Equal(t, 2.0, mat[0][2])
	assert.Equal(t, 2.0, mat[2][0])
	assert.Equal(t, 0.0, mat[1][0])
}

func TestBuildOnEmptyGraphReturnsEmptyMatrix(t *testing.T) {
	g := graphcore.New()
	mat, index := Build(g)
	assert.Empty(t, mat)
	assert.Empty(t, index)
}
