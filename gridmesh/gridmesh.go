// Package gridmesh builds regular T-meshes — plain rows x cols grids with no
// T-junctions — for use as test fixtures and as starting points for callers
// who want to refine from a known-regular mesh rather than build one by
// hand: a fixed row-major vertex order and deterministic Right/Up
// connection emission, generalized from an unweighted graph's edges to a
// T-mesh's knot-weighted Point connections.
package gridmesh

import (
	"github.com/surfacekit/tspline/geom"
	"github.com/surfacekit/tspline/tmesh"
)

// HeightFunc computes a grid point's elevation from its absolute knot
// coordinate, letting NewRegular's caller shape the fixture — flat, saddle,
// or anything else — without touching the connection logic.
type HeightFunc func(s, t float64) float64

// NewRegular builds a rows x cols T-mesh with no T-junctions: control point
// (r,c) sits at parametric coordinate (c*knotInterval, r*knotInterval) and
// spatial location (c*knotInterval, r*knotInterval, z(s,t)), where z is the
// given height function. Passing a height function that always returns 0
// produces a flat grid; a saddle z(s,t) = s*s - t*t or a bump produce the
// curved fixtures curvature-driven tests need.
//
// rows and cols must each be at least 2; knotInterval must be positive.
func NewRegular(rows, cols int, knotInterval float64, z HeightFunc) (*tmesh.Mesh, error) {
	return tmesh.NewGrid(rows, cols, knotInterval, func(r, c int) geom.Point {
		s := float64(c) * knotInterval
		t := float64(r) * knotInterval
		return geom.New3D(s, t, z(s, t))
	})
}

// Flat returns a height function that is identically zero, for fixtures
// whose curvature is known in advance to vanish everywhere.
func Flat() HeightFunc {
	return func(float64, float64) float64 { return 0 }
}

// Saddle returns the height function z(s,t) = scale*(s*s - t*t), a classic
// negative-curvature test surface.
func Saddle(scale float64) HeightFunc {
	return func(s, t float64) float64 { return scale * (s*s - t*t) }
}

// Bump returns the height function z(s,t) = scale*s*t, a simple
// positive-in-parts, negative-in-parts mixed surface cheap to evaluate.
func Bump(scale float64) HeightFunc {
	return func(s, t float64) float64 { return scale * s * t }
}
