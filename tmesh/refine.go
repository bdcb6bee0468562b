package tmesh

import (
	"errors"
	"sort"

	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/tmerr"
)

// RefineAt inserts a shape-preserving knot at (s,t), falling back to two
// column/row-building strategies when no single straddling edge already
// lines up both points of the four-in-a-row LKI requires.
//
// It first attempts a direct local knot insertion on whichever existing
// edge straddles (s,t). If that fails because no such edge exists, it
// gathers every horizontal edge crossing the vertical line s=s, sorts their
// t-levels bottom to top, and inserts an LKI point at each — building a
// complete knot column at s — before retrying the direct attempt. If fewer
// than two such levels exist, or the retried direct attempt still fails, it
// tries the symmetric strategy: a knot row
// at t=t built from vertical edges. Fails with ErrConnectionNotFound if
// neither strategy produces a usable straddling edge.
func (m *Mesh) RefineAt(s, t float64) (*ControlPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, err := m.directLKILocked(s, t); err == nil {
		return p, nil
	} else if !errors.Is(err, tmerr.ErrConnectionNotFound) {
		return nil, err
	}

	if m.buildColumnLocked(s) {
		if p, err := m.directLKILocked(s, t); err == nil {
			return p, nil
		}
	}

	if m.buildRowLocked(t) {
		if p, err := m.directLKILocked(s, t); err == nil {
			return p, nil
		}
	}

	return nil, tmerr.ErrConnectionNotFound
}

// directLKILocked finds the single edge straddling (s,t) and performs a
// local knot insertion on it.
func (m *Mesh) directLKILocked(s, t float64) (*ControlPoint, error) {
	anchor, side, ratio, err := m.findStraddlingEdgeLocked(s, t)
	if err != nil {
		return nil, err
	}
	return m.tryLocalKnotInsertionLocked(anchor, side, ratio)
}

type crossingLevel struct {
	anchor *ControlPoint
	ratio  float64
	level  float64
}

// buildColumnLocked gathers every horizontal (Right-direction) Point
// connection whose span strictly straddles s, sorts them by their t-level
// bottom to top, and attempts a local knot insertion at each. Returns false
// without inserting anything if fewer than two levels are found.
func (m *Mesh) buildColumnLocked(s float64) bool {
	levels := m.gatherCrossingLevelsLocked(s, direction.Right)
	if len(levels) < 2 {
		return false
	}
	for _, lv := range levels {
		_, _ = m.tryLocalKnotInsertionLocked(lv.anchor, direction.Right, lv.ratio)
	}
	return true
}

// buildRowLocked is buildColumnLocked's symmetric counterpart: vertical
// (Up-direction) edges crossing t, sorted left to right by s-level.
func (m *Mesh) buildRowLocked(t float64) bool {
	levels := m.gatherCrossingLevelsLocked(t, direction.Up)
	if len(levels) < 2 {
		return false
	}
	for _, lv := range levels {
		_, _ = m.tryLocalKnotInsertionLocked(lv.anchor, direction.Up, lv.ratio)
	}
	return true
}

// gatherCrossingLevelsLocked finds every Point connection in direction side
// whose span strictly straddles target on side's axis, returning one
// crossingLevel per match sorted ascending by the perpendicular coordinate.
func (m *Mesh) gatherCrossingLevelsLocked(target float64, side direction.Direction) []crossingLevel {
	horizontal := side.Horizontal()

	var out []crossingLevel
	for _, p := range m.points {
		c := p.conns[side]
		if c.kind != KindPoint {
			continue
		}

		own := axisCoord(p, horizontal)
		if !(own < target-coordTol && target < own+c.knot-coordTol) {
			continue
		}

		out = append(out, crossingLevel{
			anchor: p,
			ratio:  (target - own) / c.knot,
			level:  axisCoord(p, !horizontal),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].level < out[j].level })

	return out
}

// Subdivide performs one global refinement pass: for every knot line
// currently in the mesh (boundary lines included), it inserts a
// shape-preserving knot at the midpoint of every span along that line whose
// local knot insertion preconditions hold. Spans without four points in a
// row, or whose four points' perpendicular knot vectors differ, are left
// unsplit. Any other insertion failure restores the snapshot taken at the
// start and propagates the error, so a failed call leaves the mesh as it was.
func (m *Mesh) Subdivide() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.cloneLocked()

	sLevels, tLevels := m.interiorKnotLevelsLocked()

	unmet := func(err error) bool {
		return errors.Is(err, tmerr.ErrConnectionNotFound) ||
			errors.Is(err, tmerr.ErrControlPointNotFound) ||
			errors.Is(err, tmerr.ErrKnotVectorsNotEqual)
	}

	for _, s := range sLevels {
		for _, anchor := range m.anchorsOnLevelLocked(s, direction.Up) {
			if _, err := m.tryLocalKnotInsertionLocked(anchor, direction.Up, 0.5); err != nil {
				if unmet(err) {
					continue
				}
				m.restoreLocked(snapshot)
				return err
			}
		}
	}

	for _, t := range tLevels {
		for _, anchor := range m.anchorsOnLevelLocked(t, direction.Right) {
			if _, err := m.tryLocalKnotInsertionLocked(anchor, direction.Right, 0.5); err != nil {
				if unmet(err) {
					continue
				}
				m.restoreLocked(snapshot)
				return err
			}
		}
	}

	return nil
}

// anchorsOnLevelLocked returns every control point whose side connection
// lies exactly on the given coordinate — p.s == level for side == Up (every
// point on the vertical knot line at that s), or p.t == level for side ==
// Right (every point on the horizontal knot line at that t) — the set
// Subdivide walks to split every span along one knot line.
func (m *Mesh) anchorsOnLevelLocked(level float64, side direction.Direction) []*ControlPoint {
	horizontal := side.Horizontal()

	var out []*ControlPoint
	for _, p := range m.points {
		if p.conns[side].kind != KindPoint {
			continue
		}
		if abs(axisCoord(p, !horizontal)-level) < coordTol {
			out = append(out, p)
		}
	}
	return out
}

// interiorKnotLevelsLocked returns every distinct s and every distinct t
// coordinate currently held by a control point, each appearing once.
func (m *Mesh) interiorKnotLevelsLocked() (sLevels, tLevels []float64) {
	seenS := map[float64]bool{}
	seenT := map[float64]bool{}
	for _, p := range m.points {
		if !seenS[roundTol(p.s)] {
			seenS[roundTol(p.s)] = true
			sLevels = append(sLevels, p.s)
		}
		if !seenT[roundTol(p.t)] {
			seenT[roundTol(p.t)] = true
			tLevels = append(tLevels, p.t)
		}
	}
	sort.Float64s(sLevels)
	sort.Float64s(tLevels)
	return sLevels, tLevels
}

func roundTol(f float64) float64 {
	const scale = 1e9
	return float64(int64(f*scale+0.5)) / scale
}
