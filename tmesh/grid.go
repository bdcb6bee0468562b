package tmesh

import (
	"fmt"

	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/geom"
	"github.com/surfacekit/tspline/tmerr"
)

// NewGrid builds a fully-connected rows x cols T-mesh with no T-junctions:
// every interior point connects to its four neighbours at knotInterval, and
// every edge of the grid carries a boundary Edge condition of the same
// weight. Point (r,c)'s spatial location is point(r,c); (0,0) is seeded as
// the mesh's origin and every other point's (s,t) coordinate is propagated
// from it through the grid's Right/Up connections.
//
// Vertices are added in row-major order, each connected to its Right
// (same row, next column) and Up (next row, same column) neighbour where
// one exists — mirroring a plain orthogonal grid constructor's traversal,
// generalized here to knot-weighted Point connections instead of graph
// edges.
//
// Fails with ErrInvalidKnotRatio if rows or cols is below 2 (a T-mesh needs
// at least one face) or knotInterval is not positive.
func NewGrid(rows, cols int, knotInterval float64, point func(r, c int) geom.Point) (*Mesh, error) {
	if rows < 2 || cols < 2 || knotInterval <= 0 {
		return nil, fmt.Errorf("tmesh: NewGrid(rows=%d, cols=%d, knotInterval=%g): %w",
			rows, cols, knotInterval, tmerr.ErrInvalidKnotRatio)
	}

	pts := make([][]*ControlPoint, rows)
	for r := range pts {
		pts[r] = make([]*ControlPoint, cols)
		for c := range pts[r] {
			pts[r][c] = NewControlPoint(point(r, c))
		}
	}

	if err := pts[0][0].SetKnotCoordinates(0, 0); err != nil {
		return nil, err
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				if err := Connect(pts[r][c], pts[r][c+1], direction.Right, knotInterval); err != nil {
					return nil, err
				}
			}
			if r+1 < rows {
				if err := Connect(pts[r][c], pts[r+1][c], direction.Up, knotInterval); err != nil {
					return nil, err
				}
			}
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := pts[r][c]
			if r == 0 {
				if err := p.SetEdgeConditionWeight(direction.Down, knotInterval); err != nil {
					return nil, err
				}
			}
			if r == rows-1 {
				if err := p.SetEdgeConditionWeight(direction.Up, knotInterval); err != nil {
					return nil, err
				}
			}
			if c == 0 {
				if err := p.SetEdgeConditionWeight(direction.Left, knotInterval); err != nil {
					return nil, err
				}
			}
			if c == cols-1 {
				if err := p.SetEdgeConditionWeight(direction.Right, knotInterval); err != nil {
					return nil, err
				}
			}
		}
	}

	m := &Mesh{}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.addPoint(pts[r][c])
		}
	}

	return m, nil
}
