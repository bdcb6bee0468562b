package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position in space; Vector is a displacement. Both are the same
// underlying representation, per the package doc.
type Point = r3.Vec
type Vector = r3.Vec

// Origin is the zero point (0,0,0).
var Origin = Point{}

// New2D builds a Point with Z=0, for flat 2D fixtures used in tests.
func New2D(x, y float64) Point {
	return Point{X: x, Y: y, Z: 0}
}

// New3D builds a full 3D point.
func New3D(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns p translated by v.
func Add(p Point, v Vector) Point {
	return r3.Add(p, v)
}

// Sub returns the vector from q to p (p - q).
func Sub(p, q Point) Vector {
	return r3.Sub(p, q)
}

// Scale returns v scaled by s.
func Scale(s float64, v Vector) Vector {
	return r3.Scale(s, v)
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector) float64 {
	return r3.Dot(a, b)
}

// Cross returns the cross product of a and b.
func Cross(a, b Vector) Vector {
	return r3.Cross(a, b)
}

// Norm returns the Euclidean length of v.
func Norm(v Vector) float64 {
	return r3.Norm(v)
}

// DistSquared returns the squared Euclidean distance between a and b,
// without paying for a square root.
func DistSquared(a, b Point) float64 {
	d := Sub(a, b)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

// ApproxEqual reports whether a and b are within tol of each other.
func ApproxEqual(a, b Point, tol float64) bool {
	return DistSquared(a, b) <= tol*tol
}

// Zero reports whether every component of v is within tol of zero, used by the evaluator
// when a denominator vector underflows (e.g. a degenerate normal).
func Zero(v Vector, tol float64) bool {
	return math.Abs(v.X) <= tol && math.Abs(v.Y) <= tol && math.Abs(v.Z) <= tol
}
