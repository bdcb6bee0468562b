package tmesh

import "github.com/surfacekit/tspline/direction"

// LocalKnots returns p's cached 5-entry local knot vectors, one per
// parametric axis, regenerating the mesh's cache first if a mutator has
// invalidated it since the last call.
//
// p must belong to this mesh; behaviour is undefined otherwise.
func (m *Mesh) LocalKnots(p *ControlPoint) LocalKnots {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureCacheLocked()

	return m.cache.vecs[p]
}

// ensureCacheLocked regenerates the local-knot-vector cache for every point
// in the mesh if it was invalidated. Callers must already hold m.mu.
func (m *Mesh) ensureCacheLocked() {
	if m.cache.valid {
		return
	}

	vecs := make(map[*ControlPoint]LocalKnots, len(m.points))
	for _, p := range m.points {
		vecs[p] = computeLocalKnots(p)
	}

	m.cache = knotCache{valid: true, vecs: vecs}
}

// computeLocalKnots derives p's local knot vectors directly by casting rays
// two intervals in each of the four directions; it does not consult the
// cache, so it is safe to call while the cache is being rebuilt.
func computeLocalKnots(p *ControlPoint) LocalKnots {
	var lk LocalKnots

	left := castFrom(p, direction.Left, 2)
	right := castFrom(p, direction.Right, 2)
	lk.S = [5]float64{
		p.s - left[0] - left[1],
		p.s - left[0],
		p.s,
		p.s + right[0],
		p.s + right[0] + right[1],
	}

	down := castFrom(p, direction.Down, 2)
	up := castFrom(p, direction.Up, 2)
	lk.T = [5]float64{
		p.t - down[0] - down[1],
		p.t - down[0],
		p.t,
		p.t + up[0],
		p.t + up[0] + up[1],
	}

	return lk
}

// castFrom is CastRay's walking logic applied without the mesh lock, used
// only while (re)computing the cache — the caller already holds m.mu.
func castFrom(p *ControlPoint, dir direction.Direction, num int) []float64 {
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
				// A malformed mesh cannot produce a valid local knot vector;
				// surface.Eval sees NaN-free but meaningless zeros rather
				// than a panic on every lookup.
				out = append(out, 0)
				continue
			}
			out = append(out, crossed)
			cur = next
		}
	}

	return out
}
