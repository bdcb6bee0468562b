package tmesh

import (
	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/tmerr"
)

const coordTol = 1e-9

// CastRay walks from p in direction dir, returning the first num knot
// intervals it crosses. Reaching an Edge emits that edge's weight once and
// zero-pads the remainder (the surface has no support beyond its own
// boundary). Reaching a T-junction detours around the missing connection:
// it steps anti-clockwise until a Point connection in dir exists, crosses
// that face (recording the crossing as the next interval), then walks back
// clockwise on the far side as close as it can get to the original line
// without overshooting it, and resumes.
//
// Returns ErrMalformedMesh if a detour's anti-clockwise search itself hits a
// T-junction or Edge before finding a way across — the rectangularity
// invariant (every face is a parallelogram) guarantees that never happens on
// a well-formed mesh.
func (m *Mesh) CastRay(p *ControlPoint, dir direction.Direction, num int) ([]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num <= 0 {
		return nil, nil
	}

	return castFromChecked(p, dir, num)
}

// castFromChecked is castFrom's logic with errors surfaced instead of
// silently zero-filled, for callers (CastRay) that want to report a
// malformed mesh rather than paper over it.
func castFromChecked(p *ControlPoint, dir direction.Direction, num int) ([]float64, error) {
	out := make([]float64, 0, num)
	cur := p

	for len(out) < num {
		c := cur.conns[dir]
		switch c.kind {
		case KindPoint:
			out = append(out, c.knot)
			cur = c.neighbor
		case KindEdge:
			out = append(out, c.knot)
			for len(out) < num {
				out = append(out, 0)
			}
		case KindTJunction:
			next, crossed, err := detourAroundTJunction(cur, dir)
			if err != nil {
				return nil, err
			}
			out = append(out, crossed)
			cur = next
		}
	}

	return out, nil
}

// detourAroundTJunction implements the single around-the-T-junction step
// described on CastRay: it returns the point reached after crossing the
// missing face, and the knot interval of that crossing.
func detourAroundTJunction(cur *ControlPoint, dir direction.Direction) (*ControlPoint, float64, error) {
	antiDir := dir.AntiClockwise()

	walker, lateral, err := cur.NavigateUntilConnection(antiDir, dir)
	if err != nil {
		return nil, 0, tmerr.ErrMalformedMesh
	}

	crossConn := walker.conns[dir]
	crossed := crossConn.knot
	farSide := crossConn.neighbor

	clockDir := dir.Clockwise()
	aligned := farSide
	var walked float64
	for walked < lateral-coordTol {
		c := aligned.conns[clockDir]
		if c.kind != KindPoint {
			break
		}
		if walked+c.knot > lateral+coordTol {
			break
		}
		walked += c.knot
		aligned = c.neighbor
	}

	return aligned, crossed, nil
}
