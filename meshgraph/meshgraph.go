// Package meshgraph exports a tmesh.Mesh as a generic weighted graph for
// debugging, connectivity testing, and external visualization — a
// read-only side view the core mesh package has no dependency on.
// Generalizes a plain cell-grid-to-graph conversion to a T-mesh's
// irregular, possibly T-junctioned grid.
package meshgraph

import (
	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/meshgraph/internal/adjmatrix"
	"github.com/surfacekit/tspline/meshgraph/internal/graphcore"
	"github.com/surfacekit/tspline/tmesh"
)

// ToCoreGraph builds a weighted graph whose vertices are m's control points,
// keyed by their Index(), and whose edges are m's Point connections,
// weighted by knot interval. Only Right and Up connections are walked so
// each edge is emitted once.
func ToCoreGraph(m *tmesh.Mesh) *graphcore.Graph {
	g := graphcore.New()

	pts := m.Points()
	for _, p := range pts {
		g.AddVertex(p.Index())
	}
	for _, p := range pts {
		for _, dir := range []direction.Direction{direction.Right, direction.Up} {
			if nb := p.ConnectedPoint(dir); nb != nil {
				g.AddEdge(p.Index(), nb.Index(), p.ConnectionKnot(dir))
			}
		}
	}

	return g
}

// Reachable returns the set of control point indices reachable from from
// via Point connections, including from itself. Used by tmesh invariant
// tests to assert the mesh stays a single connected component after every
// mutator call — a property assumed but never automatically checked
// elsewhere.
func Reachable(m *tmesh.Mesh, from int) (map[int]bool, error) {
	g := ToCoreGraph(m)
	return g.BFS(from)
}

// AdjacencyMatrix exports a dense adjacency view of m: row i, column j is
// the knot interval connecting the i-th and j-th control point in index
// order, or 0 if they are not directly connected. Out of scope for the core
// surface/mesh machinery per the surface's own design, but a natural debug
// companion for external tooling.
func AdjacencyMatrix(m *tmesh.Mesh) [][]float64 {
	mat, _ := adjmatrix.Build(ToCoreGraph(m))
	return mat
}
