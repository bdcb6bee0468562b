// Package tmerr defines the tagged error kinds returned by every public
// mutator and query in tmesh and surface. Error policy:
//
//   - Stateless kinds are package-level sentinel values; callers branch on
//     them with errors.Is.
//   - Kinds that carry data (NonCubicDegree) are small structs implementing
//     error; callers branch on them with errors.As.
//   - Sentinels are never reformatted at the definition site; callers that
//     need context get it via fmt.Errorf("...: %w", err) at the call site.
//   - No component other than surface.AdaptiveRefine recovers from a panic;
//     everywhere else, a precondition violation on a mesh operation is a
//     returned error, never a termination. A negative derivative order passed
//     to basis.Eval or surface.DerMN panics.
package tmerr

import (
	"errors"
	"fmt"
)

// ErrInvalidKnotRatio indicates a split ratio passed to AddControlPoint or
// TryLocalKnotInsertion fell outside [0,1].
var ErrInvalidKnotRatio = errors.New("tmesh: knot ratio out of range")

// ErrConnectionNotFound indicates a direction expected to hold a Point or
// Edge connection instead held a T-junction, or that no edge straddles a
// requested (s,t).
var ErrConnectionNotFound = errors.New("tmesh: connection not found")

// ErrControlPointNotFound indicates a direction expected to cross a Point
// connection to a named neighbour instead held an Edge, or no match was
// found while navigating.
var ErrControlPointNotFound = errors.New("tmesh: control point not found")

// ErrForeignControlPoint indicates a control point handle passed as an
// anchor is not a member of the mesh it was used with.
var ErrForeignControlPoint = errors.New("tmesh: control point does not belong to this mesh")

// ErrConnectionInvalidKnotInterval indicates a Point connection's interval
// differs from the same edge's interval viewed from the opposite side — a
// rectangularity violation.
var ErrConnectionInvalidKnotInterval = errors.New("tmesh: connection knot interval mismatch")

// ErrExistingConnection indicates an attempt to connect over a direction
// that already holds a Point connection.
var ErrExistingConnection = errors.New("tmesh: connection already exists")

// ErrExistingControlPoint indicates an absolute-insertion target coincides
// with an existing control point within tolerance.
var ErrExistingControlPoint = errors.New("tmesh: control point already exists at these coordinates")

// ErrOutOfBoundsInsertion indicates a requested (s,t) falls outside [0,1]^2.
var ErrOutOfBoundsInsertion = errors.New("tmesh: insertion point out of bounds")

// ErrMalformedMesh indicates a search found more than one edge straddling a
// requested parameter, which violates rectangularity.
var ErrMalformedMesh = errors.New("tmesh: mesh is malformed (ambiguous straddling edge)")

// ErrKnotVectorsNotEqual indicates the Rule-3 local-knot-insertion
// precondition failed: the four in-line neighbours don't share a
// perpendicular local knot vector within tolerance.
var ErrKnotVectorsNotEqual = errors.New("tmesh: perpendicular knot vectors differ")

// NonCubicDegree indicates a conversion from a B-spline surface that is not
// degree three in both parametric directions. It carries the offending
// degrees so the caller can report them.
type NonCubicDegree struct {
	U, V int
}

// Error implements the error interface.
func (e *NonCubicDegree) Error() string {
	return fmt.Sprintf("tmesh: surface has degree (%d,%d), only cubic (3,3) is supported", e.U, e.V)
}

// Unknown wraps a lower-level error (e.g. a recovered panic that was not one
// of the kinds above) so callers can still unwrap it.
func Unknown(cause error) error {
	return fmt.Errorf("tmesh: unknown: %w", cause)
}
