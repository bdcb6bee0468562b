// Package geom is the small point/vector algebra collaborator the T-spline
// core consumes but never defines: origin, addition of a point and a vector,
// scalar multiplication, subtraction to a vector, and (for 3D surface
// evaluation) cross and dot products and magnitude.
//
// Points and vectors share one representation (gonum.org/v1/gonum/spatial/r3.Vec),
// the same way most small CG libraries treat a position as "the vector from the
// origin" rather than maintaining two parallel types. 2D fixtures (used by the
// mesh's own tests) simply leave Z at zero.
package geom
