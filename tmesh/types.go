// Package tmesh implements the T-mesh: a planar graph of control points
// whose rows and columns may stop short of spanning the grid (T-junctions),
// together with the mutators that grow it and the ray caster that recovers
// each point's local knot vectors.
//
// Concurrency: Mesh guards its point list and its cached local-knot-vector
// table with a single sync.RWMutex. Read-only accessors (Points, Len,
// CastRay, Clone) take a read lock; LocalKnots, which may regenerate the
// cache, and every mutator take a write lock. Nested calls within a
// single mutator never re-acquire the lock — internal helpers operate on
// already-locked state — so there is no re-entrancy hazard.
package tmesh

import (
	"sync"

	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/geom"
)

// ConnectionKind tags which of the three states a directional connection
// slot is in.
type ConnectionKind int

const (
	// KindTJunction marks a slot where the edge from this direction stops
	// here: no neighbour, no boundary weight.
	KindTJunction ConnectionKind = iota
	// KindEdge marks a parametric boundary of the mesh: a weight but no
	// neighbour.
	KindEdge
	// KindPoint marks a live connection to a neighbouring control point.
	KindPoint
)

// Connection is one of a control point's four directional slots. Exactly one
// of its fields is meaningful, selected by Kind: Edge carries only knot;
// Point carries both knot and neighbor; TJunction carries neither.
type Connection struct {
	kind     ConnectionKind
	knot     float64
	neighbor *ControlPoint
}

// Kind reports which of TJunction, Edge, or Point this slot holds.
func (c Connection) Kind() ConnectionKind { return c.kind }

// Knot returns the slot's knot interval. Meaningless (always 0) for
// KindTJunction.
func (c Connection) Knot() float64 { return c.knot }

// Neighbor returns the slot's connected point, or nil unless Kind is
// KindPoint.
func (c Connection) Neighbor() *ControlPoint { return c.neighbor }

// ControlPoint is one vertex of the T-mesh: a spatial location, its four
// directional connections, and its absolute (s,t) knot coordinates.
//
// A ControlPoint is only ever reachable from a Mesh (directly via the
// mesh's point list, or transitively via a neighbour's connection), so Go's
// garbage collector reclaims it — including the Point-connection 2-cycles
// every mutual connection forms — once the owning Mesh itself becomes
// unreachable. Close exists only to make a still-live mesh
// observably return every slot to KindTJunction, not to avoid a leak.
type ControlPoint struct {
	Spatial geom.Point
	conns   [4]Connection
	s, t    float64
	hasCoord bool
	index   int
}

// NewControlPoint allocates a control point at the given spatial location
// with all four connections in the T-junction state and no knot coordinates
// assigned yet.
func NewControlPoint(p geom.Point) *ControlPoint {
	return &ControlPoint{Spatial: p}
}

// S returns the point's absolute knot coordinate on the s axis.
func (p *ControlPoint) S() float64 { return p.s }

// T returns the point's absolute knot coordinate on the t axis.
func (p *ControlPoint) T() float64 { return p.t }

// Index returns the point's position in its mesh's canonical point order —
// the order new points were added in. Used by meshgraph to build stable
// external identifiers.
func (p *ControlPoint) Index() int { return p.index }

// ConnectionKind returns the kind of the connection slot in direction dir.
func (p *ControlPoint) ConnectionKind(dir direction.Direction) ConnectionKind {
	return p.conns[dir].kind
}

// ConnectionKnot returns the knot interval of the connection slot in
// direction dir.
func (p *ControlPoint) ConnectionKnot(dir direction.Direction) float64 {
	return p.conns[dir].knot
}

// ConnectedPoint returns the neighbour connected in direction dir, or nil if
// that slot is not a Point connection.
func (p *ControlPoint) ConnectedPoint(dir direction.Direction) *ControlPoint {
	return p.conns[dir].neighbor
}

// LocalKnots is a control point's cached length-5 local knot vector, one per
// parametric axis. Index 2 is the point's own coordinate on that axis;
// indices 1,0 run in the negative direction, 3,4 in the positive.
type LocalKnots struct {
	S [5]float64
	T [5]float64
}

// knotCache holds the mesh's memoized per-point local knot vectors. It is
// invalidated — not recomputed — by every mutator; surface.Eval regenerates
// it lazily on its next call.
type knotCache struct {
	valid bool
	vecs  map[*ControlPoint]LocalKnots
}

// Mesh is the collection of control points making up a T-mesh, plus the
// cached per-point local knot vectors every evaluation needs.
type Mesh struct {
	mu     sync.RWMutex
	points []*ControlPoint
	cache  knotCache
}

// Points returns the mesh's control points in canonical (insertion) order.
// The returned slice is a copy; mutating it does not affect the mesh.
func (m *Mesh) Points() []*ControlPoint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ControlPoint, len(m.points))
	copy(out, m.points)

	return out
}

// Len reports the number of control points in the mesh.
func (m *Mesh) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.points)
}

func (m *Mesh) contains(p *ControlPoint) bool {
	for _, q := range m.points {
		if q == p {
			return true
		}
	}
	return false
}

func (m *Mesh) addPoint(p *ControlPoint) {
	p.index = len(m.points)
	m.points = append(m.points, p)
}

func (m *Mesh) invalidateCache() {
	m.cache = knotCache{}
}
