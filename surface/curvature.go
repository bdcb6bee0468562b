package surface

import (
	"github.com/surfacekit/tspline/geom"
	"github.com/surfacekit/tspline/tmesh"
)

// GaussianCurvature returns the Gaussian curvature K = (eg-f^2)/(EG-F^2) of
// the surface at (u,v), built from the first fundamental form (E,F,G) —
// the dot products of the first partial derivatives — and the second
// fundamental form (e,f,g) — the second partial derivatives' projection
// onto the unit normal.
//
// Returns 0 if either the first fundamental form's determinant EG-F^2 or the
// length of the normal Su x Sv underflows (a degenerate parameterization at
// that point), rather than dividing by a near-zero value.
func GaussianCurvature(m *tmesh.Mesh, u, v float64) (float64, error) {
	const underflow = 1e-12

	su, err := DerMN(m, 1, 0, u, v)
	if err != nil {
		return 0, err
	}
	sv, err := DerMN(m, 0, 1, u, v)
	if err != nil {
		return 0, err
	}
	suu, err := DerMN(m, 2, 0, u, v)
	if err != nil {
		return 0, err
	}
	suv, err := DerMN(m, 1, 1, u, v)
	if err != nil {
		return 0, err
	}
	svv, err := DerMN(m, 0, 2, u, v)
	if err != nil {
		return 0, err
	}

	e := geom.Dot(su, su)
	f := geom.Dot(su, sv)
	g := geom.Dot(sv, sv)
	firstDenom := e*g - f*f
	if firstDenom < underflow && firstDenom > -underflow {
		return 0, nil
	}

	normal := geom.Cross(su, sv)
	if geom.Zero(normal, underflow) {
		return 0, nil
	}
	normal = geom.Scale(1/geom.Norm(normal), normal)

	littleE := geom.Dot(suu, normal)
	littleF := geom.Dot(suv, normal)
	littleG := geom.Dot(svv, normal)

	secondDenom := firstDenom
	return (littleE*littleG - littleF*littleF) / secondDenom, nil
}
