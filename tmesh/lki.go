package tmesh

import (
	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/geom"
	"github.com/surfacekit/tspline/tmerr"
)

// TryLocalKnotInsertion performs Rule-3 local knot insertion: it inserts a
// new knot between p and its dir-neighbour at the given ratio, without
// changing the surface's shape, by re-blending the two points nearest the
// new knot per the standard cubic knot-insertion identity (Boehm's
// algorithm) applied to their spatial coordinates.
//
// Preconditions: p has a Point connection in dir to n1, a Point connection
// in dir.Flip() to n0, and n1 in turn has a Point connection in dir to n2 —
// four points in a row. All four must additionally share the same local
// knot vector on the axis perpendicular to dir (within tolerance); otherwise
// the blend would not preserve shape and ErrKnotVectorsNotEqual is
// returned.
//
// On success, p and n1's spatial coordinates are updated in place and a new
// point is inserted between them, replacing the single dir connection with
// two.
func (m *Mesh) TryLocalKnotInsertion(p *ControlPoint, dir direction.Direction, ratio float64) (*ControlPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.contains(p) {
		return nil, tmerr.ErrForeignControlPoint
	}

	return m.tryLocalKnotInsertionLocked(p, dir, ratio)
}

// tryLocalKnotInsertionLocked is TryLocalKnotInsertion's body, callable by
// RefineAt without re-acquiring m.mu. Callers must already hold it and must
// already know p belongs to the mesh.
func (m *Mesh) tryLocalKnotInsertionLocked(p *ControlPoint, dir direction.Direction, ratio float64) (*ControlPoint, error) {
	if ratio < 0 || ratio > 1 {
		return nil, tmerr.ErrInvalidKnotRatio
	}

	back := p.conns[dir.Flip()]
	fwd := p.conns[dir]
	if back.kind == KindEdge || fwd.kind == KindEdge {
		return nil, tmerr.ErrControlPointNotFound
	}
	if back.kind != KindPoint || fwd.kind != KindPoint {
		return nil, tmerr.ErrConnectionNotFound
	}
	n0, n1 := back.neighbor, fwd.neighbor

	n1fwd := n1.conns[dir]
	if n1fwd.kind == KindEdge {
		return nil, tmerr.ErrControlPointNotFound
	}
	if n1fwd.kind != KindPoint {
		return nil, tmerr.ErrConnectionNotFound
	}
	n2 := n1fwd.neighbor

	if err := m.checkPerpendicularKnotsLocked(dir, n0, p, n1, n2); err != nil {
		return nil, err
	}

	e0 := back.knot
	e1 := fwd.knot
	e2 := n1fwd.knot
	em1 := firstOrZero(castFrom(n0, dir.Flip(), 1))
	e3 := firstOrZero(castFrom(n2, dir, 1))

	horizontal := dir.Horizontal()
	pc := axisCoord(p, horizontal)

	a0 := pc - em1 - e0
	a1 := pc - e0
	a3 := pc + e1
	a4 := a3 + e2
	a5 := a4 + e3

	ubar := pc + ratio*e1

	alphaP := (ubar - a0) / (a3 - a0)
	alphaQ := (ubar - a1) / (a4 - a1)
	alphaN1 := (ubar - pc) / (a5 - pc)

	oldP, oldN1 := p.Spatial, n1.Spatial
	newP := geom.Add(geom.Scale(1-alphaP, n0.Spatial), geom.Scale(alphaP, oldP))
	newN1 := geom.Add(geom.Scale(1-alphaN1, oldN1), geom.Scale(alphaN1, n2.Spatial))
	newQ := geom.Add(geom.Scale(1-alphaQ, oldP), geom.Scale(alphaQ, oldN1))

	p.Spatial = newP
	n1.Spatial = newN1

	return m.splitConnectionLocked(p, dir, newQ, ratio*e1, (1-ratio)*e1)
}

// TryAbsoluteLocalKnotInsertion is TryLocalKnotInsertion parameterized by an
// absolute target coordinate on the dir axis instead of a ratio: it derives
// the ratio from p's own coordinate and its dir-neighbour's knot interval.
func (m *Mesh) TryAbsoluteLocalKnotInsertion(p *ControlPoint, dir direction.Direction, target float64) (*ControlPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.contains(p) {
		return nil, tmerr.ErrForeignControlPoint
	}

	fwd := p.conns[dir]
	if fwd.kind == KindEdge {
		return nil, tmerr.ErrControlPointNotFound
	}
	if fwd.kind != KindPoint || fwd.knot == 0 {
		return nil, tmerr.ErrConnectionNotFound
	}

	ratio := (target - axisCoord(p, dir.Horizontal())) / fwd.knot

	return m.tryLocalKnotInsertionLocked(p, dir, ratio)
}

// checkPerpendicularKnotsLocked verifies n0, p, n1, n2 share the same local
// knot vector on the axis perpendicular to dir. Callers must hold m.mu.
func (m *Mesh) checkPerpendicularKnotsLocked(dir direction.Direction, pts ...*ControlPoint) error {
	m.ensureCacheLocked()

	perpHorizontal := !dir.Horizontal()
	var first [5]float64
	for i, p := range pts {
		lk := m.cache.vecs[p]
		v := lk.S
		if !perpHorizontal {
			v = lk.T
		}
		if i == 0 {
			first = v
			continue
		}
		for k := range v {
			if abs(v[k]-first[k]) > coordTol {
				return tmerr.ErrKnotVectorsNotEqual
			}
		}
	}
	return nil
}

func axisCoord(p *ControlPoint, horizontal bool) float64 {
	if horizontal {
		return p.s
	}
	return p.t
}

func firstOrZero(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}
