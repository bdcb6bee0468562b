package tmesh

import "github.com/surfacekit/tspline/direction"

// Clone returns an independent deep copy of the mesh: fresh control points
// holding the same spatial data and absolute knot coordinates, connected by
// replaying the original's connection structure rather than sharing any
// pointer with it.
func (m *Mesh) Clone() *Mesh {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cloneLocked()
}

// cloneLocked is Clone's body. Callers must already hold m.mu for either
// reading or writing.
func (m *Mesh) cloneLocked() *Mesh {
	n := len(m.points)
	indexOf := make(map[*ControlPoint]int, n)
	for i, p := range m.points {
		indexOf[p] = i
	}

	type record struct {
		kind        ConnectionKind
		knot        float64
		neighborIdx int
	}
	records := make([][4]record, n)
	for i, p := range m.points {
		for d := 0; d < 4; d++ {
			c := p.conns[d]
			r := record{kind: c.kind, knot: c.knot, neighborIdx: -1}
			if c.kind == KindPoint {
				r.neighborIdx = indexOf[c.neighbor]
			}
			records[i][d] = r
		}
	}

	fresh := make([]*ControlPoint, n)
	for i, p := range m.points {
		fresh[i] = &ControlPoint{
			Spatial:  p.Spatial,
			s:        p.s,
			t:        p.t,
			hasCoord: p.hasCoord,
			index:    i,
		}
	}
	for i, fp := range fresh {
		for d := 0; d < 4; d++ {
			r := records[i][d]
			dir := direction.Direction(d)
			switch r.kind {
			case KindEdge:
				fp.conns[dir] = Connection{kind: KindEdge, knot: r.knot}
			case KindPoint:
				fp.conns[dir] = Connection{kind: KindPoint, knot: r.knot, neighbor: fresh[r.neighborIdx]}
			}
		}
	}

	return &Mesh{points: fresh}
}

// restoreLocked discards the mesh's current points in favor of a
// previously taken snapshot's, for callers (Subdivide, surface.AdaptiveRefine
// via the exported helpers below) that need to roll back a failed batch of
// insertions. Callers must already hold m.mu for writing.
func (m *Mesh) restoreLocked(snapshot *Mesh) {
	m.points = snapshot.points
	m.invalidateCache()
}

// Snapshot returns an opaque deep copy of the mesh's current state, for
// callers (surface.AdaptiveRefine) that need to attempt a structural change
// and roll it back on failure.
func (m *Mesh) Snapshot() *Mesh {
	return m.Clone()
}

// Restore replaces the mesh's contents with a previously taken Snapshot.
func (m *Mesh) Restore(snapshot *Mesh) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.restoreLocked(snapshot)
}

// Close disconnects every control point from every neighbour in all four
// directions, returning every slot to the T-junction state and dropping the
// mesh's point list. It mirrors the reference implementation's destructor,
// which exists to break reference cycles under manual memory management;
// here it exists so a still-live Mesh value can be observably emptied, not
// to avoid a leak the garbage collector already handles.
func (m *Mesh) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.points {
		for _, d := range direction.All() {
			p.RemoveConnection(d)
		}
	}
	m.points = nil
	m.invalidateCache()
}
