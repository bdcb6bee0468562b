package tmesh

import (
	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/tmerr"
)

// Connect establishes a mutual Point connection between a and b: a's slot in
// dir becomes b at the given knot interval, and b's slot in dir.Flip()
// becomes a at the same interval. It also propagates absolute knot
// coordinates from whichever of a, b already has them set to the other, so
// that callers never need to compute a neighbour's (s,t) by hand.
//
// Fails with ErrExistingConnection if either of the two slots involved
// already holds a Point connection.
func Connect(a, b *ControlPoint, dir direction.Direction, knot float64) error {
	if a.conns[dir].kind == KindPoint {
		return tmerr.ErrExistingConnection
	}
	if b.conns[dir.Flip()].kind == KindPoint {
		return tmerr.ErrExistingConnection
	}

	a.conns[dir] = Connection{kind: KindPoint, knot: knot, neighbor: b}
	b.conns[dir.Flip()] = Connection{kind: KindPoint, knot: knot, neighbor: a}

	propagateCoordinate(a, b, dir, knot)

	return nil
}

// propagateCoordinate sets whichever of a, b lacks absolute knot
// coordinates from the one that has them, offsetting by knot along dir. If
// both or neither already carry coordinates, it does nothing: construction
// order elsewhere is responsible for reaching a consistent state.
func propagateCoordinate(a, b *ControlPoint, dir direction.Direction, knot float64) {
	switch {
	case a.hasCoord && !b.hasCoord:
		b.s, b.t = offset(a.s, a.t, dir, knot)
		b.hasCoord = true
	case b.hasCoord && !a.hasCoord:
		a.s, a.t = offset(b.s, b.t, dir.Flip(), knot)
		a.hasCoord = true
	}
}

func offset(s, t float64, dir direction.Direction, knot float64) (float64, float64) {
	switch dir {
	case direction.Up:
		return s, t + knot
	case direction.Down:
		return s, t - knot
	case direction.Right:
		return s + knot, t
	case direction.Left:
		return s - knot, t
	default:
		return s, t
	}
}

// RemoveConnection degrades the slot in direction dir back to a T-junction.
// If that slot held a Point connection, the neighbour's reciprocal slot is
// degraded too, so the pair never ends up pointing at each other one-way.
func (p *ControlPoint) RemoveConnection(dir direction.Direction) {
	c := p.conns[dir]
	p.conns[dir] = Connection{}

	if c.kind == KindPoint && c.neighbor != nil {
		nb := c.neighbor
		if rc := nb.conns[dir.Flip()]; rc.kind == KindPoint && rc.neighbor == p {
			nb.conns[dir.Flip()] = Connection{}
		}
	}
}

// RemoveEdgeCondition degrades an Edge slot back to a T-junction. Fails with
// ErrConnectionNotFound if the slot did not hold an Edge.
func (p *ControlPoint) RemoveEdgeCondition(dir direction.Direction) error {
	if p.conns[dir].kind != KindEdge {
		return tmerr.ErrConnectionNotFound
	}
	p.conns[dir] = Connection{}
	return nil
}

// SetEdgeConditionWeight marks the slot in direction dir as a parametric
// boundary with the given weight. The slot must currently be a T-junction or
// already an Edge (re-weighting); fails with ErrExistingConnection if it
// holds a Point connection.
func (p *ControlPoint) SetEdgeConditionWeight(dir direction.Direction, weight float64) error {
	switch p.conns[dir].kind {
	case KindTJunction, KindEdge:
		p.conns[dir] = Connection{kind: KindEdge, knot: weight}
		return nil
	default:
		return tmerr.ErrExistingConnection
	}
}

// SetKnotCoordinates assigns the point's absolute (s,t) knot coordinates.
// Only valid on an otherwise-unconnected point (every slot still a
// T-junction): once any connection exists, coordinates must instead arrive
// by propagation through Connect. Used exactly once, to anchor a mesh's
// origin.
func (p *ControlPoint) SetKnotCoordinates(s, t float64) error {
	for _, c := range p.conns {
		if c.kind != KindTJunction {
			return tmerr.ErrExistingConnection
		}
	}
	p.s, p.t = s, t
	p.hasCoord = true
	return nil
}

// NavigateUntilConnection walks from p in the primary direction while the
// secondary direction remains a T-junction or an Edge, accumulating
// primary-direction knot intervals, and stops as soon as the secondary
// direction becomes a Point connection.
//
// Fails with ErrConnectionNotFound if a primary step hits a T-junction
// before the secondary direction resolves, or with ErrControlPointNotFound
// if a primary step hits an Edge first.
func (p *ControlPoint) NavigateUntilConnection(primary, secondary direction.Direction) (*ControlPoint, float64, error) {
	cur := p
	var accumulated float64

	for {
		if cur.conns[secondary].kind == KindPoint {
			return cur, accumulated, nil
		}

		switch cur.conns[primary].kind {
		case KindPoint:
			accumulated += cur.conns[primary].knot
			cur = cur.conns[primary].neighbor
		case KindTJunction:
			return nil, 0, tmerr.ErrConnectionNotFound
		case KindEdge:
			return nil, 0, tmerr.ErrControlPointNotFound
		}
	}
}
