// Package tspline implements a cubic tensor-product T-spline surface
// engine: a control-point mesh that may contain T-junctions, local knot
// insertion that edits the mesh without moving the surface, absolute
// insertion that does move it, parametric ray casting to recover local knot
// vectors, rational surface evaluation with analytic derivatives up to
// second order, Gaussian curvature, and curvature-driven adaptive
// refinement.
//
// Subpackages:
//
//	tmesh/     — the T-mesh: control points, connections, construction,
//	             local knot insertion, ray casting, clone/snapshot
//	surface/   — evaluation, derivatives, Gaussian curvature, adaptive
//	             refinement over a tmesh.Mesh
//	basis/     — the cubic B-spline basis function and its derivatives
//	direction/ — the four-way connection direction and its algebra
//	geom/      — point/vector arithmetic the rest of the module consumes
//	tmerr/     — the tagged error kinds every mutator and query returns
//	gridmesh/  — regular-grid T-mesh constructors used as test fixtures
//	meshgraph/ — debug/analysis export of a mesh to a generic graph
//	examples/  — shared mesh fixtures consumed by package tests
//
// This package itself holds no exported symbols; it exists for the doc
// comment above `go doc github.com/surfacekit/tspline`.
package tspline
