// Package adjmatrix builds a dense row-major adjacency view of a
// graphcore.Graph, vendored in-module rather than shared: a vertex-index
// map, reverse index slice, and deterministic row/col order by ascending
// vertex ID, trimmed to a single dense [][]float64 export with no
// round-trip or decomposition support, since meshgraph only needs a
// debug/visualization snapshot.
package adjmatrix

import (
	"sort"

	"github.com/surfacekit/tspline/meshgraph/internal/graphcore"
)

// Build returns g's adjacency as a dense matrix indexed by the sorted order
// of its vertex IDs: row i, column j holds the weight of the edge between
// the i-th and j-th smallest vertex ID, or 0 if none exists. The returned
// index slice gives that row/column order (index[i] is the vertex ID at
// row/column i), so callers can map back from matrix position to vertex.
func Build(g *graphcore.Graph) (mat [][]float64, index []int) {
	index = g.Vertices()
	sort.Ints(index)

	n := len(index)
	mat = make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}

	pos := make(map[int]int, n)
	for i, id := range index {
		pos[id] = i
	}

	for i, id := range index {
		nbrs, err := g.Neighbors(id)
		if err != nil {
			continue
		}
		for nb, w := range nbrs {
			if j, ok := pos[nb]; ok {
				mat[i][j] = w
			}
		}
	}

	return mat, index
}
