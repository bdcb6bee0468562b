package tmesh

import (
	"fmt"

	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/geom"
	"github.com/surfacekit/tspline/tmerr"
)

// NewIrregularGrid is NewGrid generalized to per-column and per-row knot
// intervals: colKnots[c] is the Right-direction interval leaving column c
// (length cols-1), rowKnots[r] is the Up-direction interval leaving row r
// (length rows-1). FromBSplineSurface uses this to reproduce a surface's
// possibly non-uniform knot spacing exactly, which NewGrid's single shared
// interval cannot express.
func NewIrregularGrid(rows, cols int, colKnots, rowKnots []float64, point func(r, c int) geom.Point) (*Mesh, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("tmesh: NewIrregularGrid(rows=%d, cols=%d): %w", rows, cols, tmerr.ErrInvalidKnotRatio)
	}
	if len(colKnots) != cols-1 || len(rowKnots) != rows-1 {
		return nil, fmt.Errorf("tmesh: NewIrregularGrid: want %d column knots and %d row knots: %w",
			cols-1, rows-1, tmerr.ErrInvalidKnotRatio)
	}
	for _, k := range colKnots {
		if k <= 0 {
			return nil, tmerr.ErrInvalidKnotRatio
		}
	}
	for _, k := range rowKnots {
		if k <= 0 {
			return nil, tmerr.ErrInvalidKnotRatio
		}
	}

	pts := make([][]*ControlPoint, rows)
	for r := range pts {
		pts[r] = make([]*ControlPoint, cols)
		for c := range pts[r] {
			pts[r][c] = NewControlPoint(point(r, c))
		}
	}

	if err := pts[0][0].SetKnotCoordinates(0, 0); err != nil {
		return nil, err
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				if err := Connect(pts[r][c], pts[r][c+1], direction.Right, colKnots[c]); err != nil {
					return nil, err
				}
			}
			if r+1 < rows {
				if err := Connect(pts[r][c], pts[r+1][c], direction.Up, rowKnots[r]); err != nil {
					return nil, err
				}
			}
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := pts[r][c]
			if r == 0 {
				if err := p.SetEdgeConditionWeight(direction.Down, rowKnots[0]); err != nil {
					return nil, err
				}
			}
			if r == rows-1 {
				if err := p.SetEdgeConditionWeight(direction.Up, rowKnots[rows-2]); err != nil {
					return nil, err
				}
			}
			if c == 0 {
				if err := p.SetEdgeConditionWeight(direction.Left, colKnots[0]); err != nil {
					return nil, err
				}
			}
			if c == cols-1 {
				if err := p.SetEdgeConditionWeight(direction.Right, colKnots[cols-2]); err != nil {
					return nil, err
				}
			}
		}
	}

	m := &Mesh{}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.addPoint(pts[r][c])
		}
	}

	return m, nil
}

// BSplineSurface is the minimal cubic tensor-product B-spline surface
// FromBSplineSurface accepts: a control point grid indexed [row][col], the
// row axis parameterized by VKnots and the column axis by UKnots. Both knot
// vectors must be clamped (length = point count + degree + 1) for the
// Greville normalization below to land the surface's domain on [0,1]².
type BSplineSurface struct {
	ControlPoints [][]geom.Point
	UKnots        []float64
	VKnots        []float64
}

// FromBSplineSurface converts a cubic B-spline surface into a T-mesh with a
// regular rectangular grid and no T-junctions: any cubic B-spline surface is
// trivially a T-spline, which makes this a convenient on-ramp for refining
// existing NURBS-style geometry with local knot insertion. Knot coordinates
// are normalized to [0,1] via Greville abscissae (knot averages),
// matching a clamped cubic curve's parameterization.
//
// Fails with *tmerr.NonCubicDegree if either axis's inferred degree (knot
// count minus control-point count minus one) is not 3.
func FromBSplineSurface(s BSplineSurface) (*Mesh, error) {
	rows := len(s.ControlPoints)
	if rows < 2 || len(s.ControlPoints[0]) < 2 {
		return nil, fmt.Errorf("tmesh: FromBSplineSurface: need at least a 2x2 control grid: %w", tmerr.ErrOutOfBoundsInsertion)
	}
	cols := len(s.ControlPoints[0])

	udeg := len(s.UKnots) - cols - 1
	vdeg := len(s.VKnots) - rows - 1
	if udeg != 3 || vdeg != 3 {
		return nil, &tmerr.NonCubicDegree{U: udeg, V: vdeg}
	}

	normU := grevilleAbscissae(s.UKnots, 3)
	normV := grevilleAbscissae(s.VKnots, 3)

	uMin, uSpan := normU[0], normU[len(normU)-1]-normU[0]
	vMin, vSpan := normV[0], normV[len(normV)-1]-normV[0]

	colKnots := make([]float64, cols-1)
	for c := range colKnots {
		colKnots[c] = fraction(normU[c+1], uMin, uSpan) - fraction(normU[c], uMin, uSpan)
	}
	rowKnots := make([]float64, rows-1)
	for r := range rowKnots {
		rowKnots[r] = fraction(normV[r+1], vMin, vSpan) - fraction(normV[r], vMin, vSpan)
	}

	return NewIrregularGrid(rows, cols, colKnots, rowKnots, func(r, c int) geom.Point {
		return s.ControlPoints[r][c]
	})
}

// grevilleAbscissae computes the Greville abscissae of a knot vector at the
// given degree: for each of the n = len(knots)-degree-1 control points, the
// average of the degree knots starting one past its index. These are the
// optimal B-spline interpolation parameters and, critically for
// FromBSplineSurface, land strictly increasing even under a clamped
// (degree+1)-fold end multiplicity — unlike sampling a single knot entry,
// which degenerates to a repeated value at the clamped ends.
func grevilleAbscissae(knots []float64, degree int) []float64 {
	n := len(knots) - degree - 1
	out := make([]float64, n)
	for i := range out {
		var sum float64
		for j := 1; j <= degree; j++ {
			sum += knots[i+j]
		}
		out[i] = sum / float64(degree)
	}
	return out
}

// fraction normalizes v into [0,1] given the domain's min and span, falling
// back to the domain midpoint when the span collapses to zero.
func fraction(v, min, span float64) float64 {
	if span <= 0 {
		return 0.5
	}
	return (v - min) / span
}
