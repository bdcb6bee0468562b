package surface

import (
	"math"

	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/tmesh"
)

const snapTol = 1e-9

// AdaptiveRefine repeatedly samples Gaussian curvature over the surface's
// parametric domain and, for every flagged cell, inserts shape-preserving
// knots at two targets snapped onto the mesh's existing knot lines: (u,
// nearest existing t-line) and (nearest existing s-line, v). Snapping to a
// knot line that already exists is what lets TryAbsoluteLocalKnotInsertion
// find a straddling edge to split, rather than guessing at an unsupported
// interior point; growing the sampling grid each pass lets later passes
// find finer detail the coarser one missed.
//
// Each candidate insertion runs inside a recover()-guarded region against a
// snapshot of the mesh taken immediately before it: a panic or a structural
// error (an edge that no longer straddles the target, a knot-vector
// mismatch introduced by an earlier insertion this pass) rolls back just
// that one attempt rather than the whole pass. Targets already attempted
// this pass (within tolerance, on the same axis) are skipped rather than
// retried. A pass in which no candidate succeeds ends the refinement early,
// on the grounds that a finer grid would only resample the same unrefinable
// regions.
//
// samples is the initial per-axis resolution of the first pass's sampling
// grid; it doubles on each subsequent pass, up to maxIterations passes.
// Returns the total number of knots successfully inserted.
func AdaptiveRefine(m *tmesh.Mesh, threshold float64, maxIterations, samples int) (int, error) {
	if samples < 2 {
		samples = 2
	}

	total := 0
	gridSamples := samples
	for pass := 0; pass < maxIterations; pass++ {
		minS, maxS, minT, maxT, err := paramBounds(m)
		if err != nil {
			return total, err
		}
		sLevels, tLevels := knotLevels(m)

		attempted := map[refineTarget]bool{}
		insertedThisPass := 0
		for i := 0; i < gridSamples; i++ {
			uc := minS + (float64(i)+0.5)*(maxS-minS)/float64(gridSamples)
			for j := 0; j < gridSamples; j++ {
				vc := minT + (float64(j)+0.5)*(maxT-minT)/float64(gridSamples)

				k, err := GaussianCurvature(m, uc, vc)
				if err != nil || math.Abs(k) <= threshold {
					continue
				}

				for _, target := range snappedTargets(uc, vc, sLevels, tLevels) {
					key := refineTarget{s: roundSnap(target.s), t: roundSnap(target.t), axis: target.axis}
					if attempted[key] {
						continue
					}
					attempted[key] = true

					if attemptInsertion(m, target) {
						insertedThisPass++
						total++
					}
				}
			}
		}

		if insertedThisPass == 0 {
			break
		}
		gridSamples *= 2
	}

	return total, nil
}

// refineTarget names an absolute (s,t) coordinate to insert a knot at. axis
// records which pre-existing knot line it was snapped onto:
// direction.Right means t is the pre-existing line (a new knot along an
// existing row, s free); direction.Up means s is the pre-existing line (a
// new knot along an existing column, t free).
type refineTarget struct {
	s, t float64
	axis direction.Direction
}

// snappedTargets produces the two knot-insertion targets a flagged cell
// center (uc,vc) contributes: one on the nearest existing t-line with s
// left at the cell center, one on the nearest existing s-line with t left
// at the cell center. Either is omitted if the mesh has no knot levels on
// that axis yet, which cannot happen for a non-empty mesh.
func snappedTargets(uc, vc float64, sLevels, tLevels []float64) []refineTarget {
	var out []refineTarget
	if nearestT, ok := nearestLevel(tLevels, vc); ok {
		out = append(out, refineTarget{s: uc, t: nearestT, axis: direction.Right})
	}
	if nearestS, ok := nearestLevel(sLevels, uc); ok {
		out = append(out, refineTarget{s: nearestS, t: vc, axis: direction.Up})
	}
	return out
}

// nearestLevel returns the entry of levels closest to v.
func nearestLevel(levels []float64, v float64) (float64, bool) {
	if len(levels) == 0 {
		return 0, false
	}
	best := levels[0]
	bestDist := math.Abs(levels[0] - v)
	for _, lv := range levels[1:] {
		if d := math.Abs(lv - v); d < bestDist {
			best, bestDist = lv, d
		}
	}
	return best, true
}

// knotLevels returns every distinct s and every distinct t coordinate
// currently held by a control point in m, each appearing once.
func knotLevels(m *tmesh.Mesh) (sLevels, tLevels []float64) {
	seenS := map[float64]bool{}
	seenT := map[float64]bool{}
	for _, p := range m.Points() {
		if rs := roundSnap(p.S()); !seenS[rs] {
			seenS[rs] = true
			sLevels = append(sLevels, p.S())
		}
		if rt := roundSnap(p.T()); !seenT[rt] {
			seenT[rt] = true
			tLevels = append(tLevels, p.T())
		}
	}
	return sLevels, tLevels
}

func roundSnap(f float64) float64 {
	const scale = 1e9
	return math.Round(f*scale) / scale
}

// attemptInsertion tries to insert a shape-preserving knot at target, rolling
// back to a pre-attempt snapshot on either a returned error or a panic. It
// reports whether the insertion succeeded.
func attemptInsertion(m *tmesh.Mesh, target refineTarget) (ok bool) {
	snapshot := m.Snapshot()

	defer func() {
		if r := recover(); r != nil {
			m.Restore(snapshot)
			ok = false
		}
	}()

	anchor, dir, abs, found := findSnapAnchor(m, target)
	if !found {
		return false
	}

	if _, err := m.TryAbsoluteLocalKnotInsertion(anchor, dir, abs); err != nil {
		m.Restore(snapshot)
		return false
	}
	return true
}

// findSnapAnchor locates the control point and direction
// TryAbsoluteLocalKnotInsertion needs to realize target: for a row target
// (axis == direction.Right) it scans the row at target.t for the Right
// connection straddling target.s; for a column target (axis ==
// direction.Up) it scans the column at target.s for the Up connection
// straddling target.t.
func findSnapAnchor(m *tmesh.Mesh, target refineTarget) (anchor *tmesh.ControlPoint, dir direction.Direction, abs float64, found bool) {
	pts := m.Points()

	switch target.axis {
	case direction.Right:
		for _, p := range pts {
			if p.ConnectionKind(direction.Right) != tmesh.KindPoint {
				continue
			}
			if math.Abs(p.T()-target.t) > snapTol {
				continue
			}
			knot := p.ConnectionKnot(direction.Right)
			if p.S() < target.s-snapTol && target.s < p.S()+knot-snapTol {
				return p, direction.Right, target.s, true
			}
		}
	case direction.Up:
		for _, p := range pts {
			if p.ConnectionKind(direction.Up) != tmesh.KindPoint {
				continue
			}
			if math.Abs(p.S()-target.s) > snapTol {
				continue
			}
			knot := p.ConnectionKnot(direction.Up)
			if p.T() < target.t-snapTol && target.t < p.T()+knot-snapTol {
				return p, direction.Up, target.t, true
			}
		}
	}

	return nil, 0, 0, false
}

// paramBounds returns the mesh's observed (s,t) extent: the min and max
// absolute knot coordinate any control point currently holds on each axis.
func paramBounds(m *tmesh.Mesh) (minS, maxS, minT, maxT float64, err error) {
	pts := m.Points()
	if len(pts) == 0 {
		return 0, 0, 0, 0, errEmptyMesh
	}

	minS, maxS = pts[0].S(), pts[0].S()
	minT, maxT = pts[0].T(), pts[0].T()
	for _, p := range pts[1:] {
		if p.S() < minS {
			minS = p.S()
		}
		if p.S() > maxS {
			maxS = p.S()
		}
		if p.T() < minT {
			minT = p.T()
		}
		if p.T() > maxT {
			maxT = p.T()
		}
	}
	return minS, maxS, minT, maxT, nil
}
