// Package surface evaluates the rational tensor-product surface a tmesh.Mesh
// defines: point evaluation, analytic partial derivatives up to second
// order (via the Leibniz quotient rule, falling back to central
// differences beyond that), Gaussian curvature, and curvature-driven
// adaptive refinement.
package surface

import (
	"github.com/surfacekit/tspline/basis"
	"github.com/surfacekit/tspline/geom"
	"github.com/surfacekit/tspline/internal/surfmat"
	"github.com/surfacekit/tspline/tmesh"
)

// maxAnalyticOrder is the highest total derivative order m+n the
// quotient-rule machinery below computes in closed form; DerMN falls back
// to central differences for any (m,n) with m+n above this bound, lowering
// one axis's order per finite-difference step until it reaches this bound.
const maxAnalyticOrder = 2

// Eval returns the surface's position at parameter (u,v): the weighted
// average of every control point whose basis function has (u,v) in its
// support, Σ Bᵢ(u,v) Pᵢ / Σ Bᵢ(u,v).
func Eval(m *tmesh.Mesh, u, v float64) (geom.Point, error) {
	return DerMN(m, 0, 0, u, v)
}

// DerMN returns the mOrd,nOrd mixed partial derivative of the surface at
// (u,v). DerMN(m, 0, 0, u, v) is Eval's position.
//
// Orders with mOrd+nOrd <= 2 are computed analytically via the Leibniz
// quotient rule applied to S = N/W; higher orders fall back to central
// finite differences of the next lower order, with h = 1e-6, matching
// basis.Eval's convention for its own higher derivatives.
func DerMN(m *tmesh.Mesh, mOrd, nOrd int, u, v float64) (geom.Point, error) {
	if mOrd < 0 || nOrd < 0 {
		panic("surface: negative derivative order")
	}

	if mOrd+nOrd <= maxAnalyticOrder {
		table, err := buildQuotientTable(m, u, v)
		if err != nil {
			return geom.Point{}, err
		}
		return table.s[mOrd][nOrd], nil
	}

	const h = 1e-6
	if mOrd > 0 {
		a, err := DerMN(m, mOrd-1, nOrd, u+h, v)
		if err != nil {
			return geom.Point{}, err
		}
		b, err := DerMN(m, mOrd-1, nOrd, u-h, v)
		if err != nil {
			return geom.Point{}, err
		}
		return geom.Scale(1/(2*h), geom.Sub(a, b)), nil
	}

	a, err := DerMN(m, mOrd, nOrd-1, u, v+h)
	if err != nil {
		return geom.Point{}, err
	}
	b, err := DerMN(m, mOrd, nOrd-1, u, v-h)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Scale(1/(2*h), geom.Sub(a, b)), nil
}

// quotientTable holds S^(m,n) for every (m,n) with m+n <= maxAnalyticOrder,
// indexed [m][n].
type quotientTable struct {
	s [3][3]geom.Point
}

// binom is Pascal's triangle for the handful of coefficients the
// second-order Leibniz expansion below needs.
func binom(n, k int) float64 {
	switch {
	case k < 0 || k > n:
		return 0
	case k == 0 || k == n:
		return 1
	case n == 2 && k == 1:
		return 2
	default:
		return 0
	}
}

// buildQuotientTable assembles N^(m,n) and W^(m,n) for every (m,n) with
// m,n in {0,1,2} as 3x3 outer-product accumulations — one per control
// point, of that point's u-axis basis-derivative triple against its v-axis
// triple — then solves for each derivative S^(m,n) of S = N/W in ascending
// total order via the Leibniz product rule for N = S*W.
func buildQuotientTable(mesh *tmesh.Mesh, u, v float64) (*quotientTable, error) {
	w, _ := surfmat.NewDense(3, 3)
	nx, _ := surfmat.NewDense(3, 3)
	ny, _ := surfmat.NewDense(3, 3)
	nz, _ := surfmat.NewDense(3, 3)

	for _, p := range mesh.Points() {
		lk := mesh.LocalKnots(p)
		if !basis.InSupport(u, lk.S) || !basis.InSupport(v, lk.T) {
			continue
		}

		bu, _ := surfmat.NewDense(3, 1)
		bv, _ := surfmat.NewDense(1, 3)
		for k := 0; k < 3; k++ {
			_ = bu.Set(k, 0, basis.Eval(k, u, lk.S))
			_ = bv.Set(0, k, basis.Eval(k, v, lk.T))
		}

		outer, err := surfmat.Mul(bu, bv)
		if err != nil {
			return nil, err
		}

		w, _ = surfmat.Add(w, outer)
		nx, _ = surfmat.Add(nx, surfmat.Scale(outer, p.Spatial.X))
		ny, _ = surfmat.Add(ny, surfmat.Scale(outer, p.Spatial.Y))
		nz, _ = surfmat.Add(nz, surfmat.Scale(outer, p.Spatial.Z))
	}

	w00, _ := w.At(0, 0)
	if w00 == 0 {
		return &quotientTable{}, nil
	}

	var table quotientTable
	for total := 0; total <= maxAnalyticOrder; total++ {
		for mOrd := 0; mOrd <= total; mOrd++ {
			nOrd := total - mOrd

			var subX, subY, subZ float64
			for i := 0; i <= mOrd; i++ {
				for j := 0; j <= nOrd; j++ {
					if i == mOrd && j == nOrd {
						continue
					}
					c := binom(mOrd, i) * binom(nOrd, j)
					wij, _ := w.At(mOrd-i, nOrd-j)
					subX += c * table.s[i][j].X * wij
					subY += c * table.s[i][j].Y * wij
					subZ += c * table.s[i][j].Z * wij
				}
			}

			nxv, _ := nx.At(mOrd, nOrd)
			nyv, _ := ny.At(mOrd, nOrd)
			nzv, _ := nz.At(mOrd, nOrd)

			table.s[mOrd][nOrd] = geom.Point{
				X: (nxv - subX) / w00,
				Y: (nyv - subY) / w00,
				Z: (nzv - subZ) / w00,
			}
		}
	}

	return &table, nil
}
