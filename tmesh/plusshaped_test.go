package tmesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfacekit/tspline/direction"
	"github.com/surfacekit/tspline/examples"
	"github.com/surfacekit/tspline/tmesh"
)

// Exercises examples.PlusShaped from outside the tmesh package (examples
// already imports tmesh, so this lives in tmesh_test rather than tmesh to
// avoid an import cycle).
func TestPlusShapedRayCastDetoursAroundTJunction(t *testing.T) {
	m, err := examples.PlusShaped()
	require.NoError(t, err)

	var np *tmesh.ControlPoint
	for _, p := range m.Points() {
		if p.S() == 0.75 && p.T() == 0 {
			np = p
		}
	}
	require.NotNil(t, np, "PlusShaped's split point at (0.75, 0)")
	require.Equal(t, tmesh.KindTJunction, np.ConnectionKind(direction.Up))

	// Casting Up from np forces the detour: np has no Up neighbour, so
	// CastRay walks anti-clockwise to np's Left neighbour, crosses the
	// adjoining face back up a row, and lands one row up from np's column.
	out, err := m.CastRay(np, direction.Up, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 0.5, out[0], "detour crosses the adjoining face's full row spacing")
	assert.Equal(t, 0.5, out[1], "then continues along the regular grid spacing")
}
