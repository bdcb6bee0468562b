package surface

import "errors"

// errEmptyMesh indicates an operation that needs at least one control point
// (computing parametric bounds, sampling curvature) was given an empty mesh.
var errEmptyMesh = errors.New("surface: mesh has no control points")
