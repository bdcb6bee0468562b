package tmesh

import (
	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/geom"
	"github.com/surfacekit/tspline/tmerr"
)

// AddControlPoint splits the Point connection running from anchor in
// direction side, inserting a new control point p at the given ratio
// (0 meaning coincident with anchor, 1 coincident with the far neighbour).
// The two halves of the original connection become Point connections of
// weight ratio*k and (1-ratio)*k.
//
// For each of the two directions perpendicular to side, the new point
// inherits anchor's Edge weight if anchor is a boundary point there,
// otherwise findInferredConnection searches for a Rule-2 connection across
// the adjoining face; if neither applies, that slot is left a T-junction.
//
// Fails with ErrForeignControlPoint if anchor is not a member of m, with
// ErrInvalidKnotRatio if ratio is outside [0,1], and with
// ErrConnectionNotFound if anchor has no Point connection in direction side.
func (m *Mesh) AddControlPoint(p geom.Point, anchor *ControlPoint, side direction.Direction, ratio float64) (*ControlPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.contains(anchor) {
		return nil, tmerr.ErrForeignControlPoint
	}
	if ratio < 0 || ratio > 1 {
		return nil, tmerr.ErrInvalidKnotRatio
	}

	conn := anchor.conns[side]
	if conn.kind != KindPoint {
		return nil, tmerr.ErrConnectionNotFound
	}

	k := conn.knot
	np, err := m.splitConnectionLocked(anchor, side, p, k*ratio, k*(1-ratio))
	if err != nil {
		return nil, err
	}

	return np, nil
}

// splitConnectionLocked removes anchor's side connection, inserts a new
// point with the given spatial location between anchor and its former
// neighbour at knot intervals k1 (anchor-to-new) and k2 (new-to-far), and
// resolves the new point's two perpendicular connections by inheritance or
// Rule-2 inference. Callers must already hold m.mu for writing.
func (m *Mesh) splitConnectionLocked(anchor *ControlPoint, side direction.Direction, spatial geom.Point, k1, k2 float64) (*ControlPoint, error) {
	far := anchor.conns[side].neighbor

	anchor.RemoveConnection(side)

	np := NewControlPoint(spatial)
	if err := Connect(anchor, np, side, k1); err != nil {
		return nil, err
	}
	if err := Connect(np, far, side, k2); err != nil {
		return nil, err
	}

	for _, perp := range direction.Perp(side) {
		if anchor.conns[perp].kind == KindEdge {
			_ = np.SetEdgeConditionWeight(perp, anchor.conns[perp].knot)
			continue
		}
		if err := m.findInferredConnectionLocked(np, side, perp); err != nil {
			return nil, err
		}
	}

	m.addPoint(np)
	m.invalidateCache()

	return np, nil
}

// findInferredConnectionLocked implements Rule 2: it checks whether the
// newly inserted point np — which split an edge running along side, at
// distance k1 = np.conns[side.Flip()].knot from its anchor — should gain a
// Point connection in the perpendicular direction perp, by locating a point
// on the far side of the adjoining face exactly k1 away from that face's
// near corner.
//
// It walks from np's anchor in direction perp to find the face's near
// corner, then along side from there, accumulating knot intervals until
// they match k1 exactly (within tolerance): a match means a control point
// already sits directly across from np, so a Point connection of the face's
// height is inserted between them. Overshooting the target, or hitting a
// boundary before reaching it, means no connection is inferred — not an
// error, simply nothing to do.
func (m *Mesh) findInferredConnectionLocked(np *ControlPoint, side, perp direction.Direction) error {
	back := np.conns[side.Flip()]
	if back.kind != KindPoint {
		return nil
	}
	anchor := back.neighbor
	k1 := back.knot

	faceConn := anchor.conns[perp]
	if faceConn.kind != KindPoint {
		return nil
	}
	height := faceConn.knot
	cur := faceConn.neighbor

	var sum float64
	for {
		if abs(sum-k1) < coordTol {
			if np.conns[perp].kind == KindPoint {
				return nil
			}
			return Connect(np, cur, perp, height)
		}
		if sum > k1+coordTol {
			return nil
		}

		next := cur.conns[side]
		if next.kind != KindPoint {
			return nil
		}
		sum += next.knot
		cur = next.neighbor
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// TryAddAbsolutePoint locates the unique existing Point connection whose
// span strictly straddles (s,t) — either a horizontal connection at the
// matching t with s strictly between its endpoints, or a vertical one at
// the matching s with t strictly between its endpoints — and splits it via
// AddControlPoint at the corresponding ratio.
//
// Fails with ErrOutOfBoundsInsertion if (s,t) falls outside [0,1]^2, with
// ErrExistingControlPoint if a control point already sits there within
// tolerance, with ErrConnectionNotFound if no connection straddles it, and
// with ErrMalformedMesh if more than one does.
func (m *Mesh) TryAddAbsolutePoint(spatial geom.Point, s, t float64) (*ControlPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s < -coordTol || s > 1+coordTol || t < -coordTol || t > 1+coordTol {
		return nil, tmerr.ErrOutOfBoundsInsertion
	}

	for _, q := range m.points {
		if abs(q.s-s) < coordTol && abs(q.t-t) < coordTol {
			return nil, tmerr.ErrExistingControlPoint
		}
	}

	anchor, side, ratio, err := m.findStraddlingEdgeLocked(s, t)
	if err != nil {
		return nil, err
	}

	k := anchor.conns[side].knot
	return m.splitConnectionLocked(anchor, side, spatial, k*ratio, k*(1-ratio))
}

// findStraddlingEdgeLocked scans every control point's Right and Up
// connections (covering every horizontal and vertical edge exactly once)
// for the one whose span strictly straddles (s,t).
//
// Two matches on the *same* axis are treated as mesh corruption
// (ErrMalformedMesh). When one horizontal and one vertical edge both
// straddle (s,t), the horizontal (Right) edge is returned.
func (m *Mesh) findStraddlingEdgeLocked(s, t float64) (anchor *ControlPoint, side direction.Direction, ratio float64, err error) {
	var rightAnchor, upAnchor *ControlPoint
	var rightRatio, upRatio float64

	for _, p := range m.points {
		if c := p.conns[direction.Right]; c.kind == KindPoint {
			if abs(p.t-t) < coordTol && p.s < s-coordTol && s < p.s+c.knot-coordTol {
				if rightAnchor != nil {
					return nil, 0, 0, tmerr.ErrMalformedMesh
				}
				rightAnchor, rightRatio = p, (s-p.s)/c.knot
			}
		}
		if c := p.conns[direction.Up]; c.kind == KindPoint {
			if abs(p.s-s) < coordTol && p.t < t-coordTol && t < p.t+c.knot-coordTol {
				if upAnchor != nil {
					return nil, 0, 0, tmerr.ErrMalformedMesh
				}
				upAnchor, upRatio = p, (t-p.t)/c.knot
			}
		}
	}

	switch {
	case rightAnchor != nil:
		return rightAnchor, direction.Right, rightRatio, nil
	case upAnchor != nil:
		return upAnchor, direction.Up, upRatio, nil
	default:
		return nil, 0, 0, tmerr.ErrConnectionNotFound
	}
}
