package tmesh

import (
	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/geom"
)

// New builds the smallest possible T-mesh: a single 1x1 face. corners gives
// the four spatial locations in fixed parametric order — (0,0), (1,0),
// (1,1), (0,1) — connected into a unit square by four Point connections of
// weight 1, with every outward-facing side set to an Edge of
// edgeKnotInterval. The first corner's absolute knot coordinates are seeded
// at (0,0) and propagate to the other three through the Point connections.
func New(corners [4]geom.Point, edgeKnotInterval float64) (*Mesh, error) {
	origin := NewControlPoint(corners[0])
	right := NewControlPoint(corners[1])
	topRight := NewControlPoint(corners[2])
	top := NewControlPoint(corners[3])

	if err := origin.SetKnotCoordinates(0, 0); err != nil {
		return nil, err
	}

	if err := Connect(origin, right, direction.Right, 1.0); err != nil {
		return nil, err
	}
	if err := Connect(origin, top, direction.Up, 1.0); err != nil {
		return nil, err
	}
	if err := Connect(top, topRight, direction.Right, 1.0); err != nil {
		return nil, err
	}
	if err := Connect(right, topRight, direction.Up, 1.0); err != nil {
		return nil, err
	}

	boundaries := []struct {
		p   *ControlPoint
		d   direction.Direction
	}{
		{origin, direction.Down}, {origin, direction.Left},
		{right, direction.Down}, {right, direction.Right},
		{topRight, direction.Up}, {topRight, direction.Right},
		{top, direction.Up}, {top, direction.Left},
	}
	for _, b := range boundaries {
		if err := b.p.SetEdgeConditionWeight(b.d, edgeKnotInterval); err != nil {
			return nil, err
		}
	}

	m := &Mesh{}
	m.addPoint(origin)
	m.addPoint(right)
	m.addPoint(topRight)
	m.addPoint(top)

	return m, nil
}
