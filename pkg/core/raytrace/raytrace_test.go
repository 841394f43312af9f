package raytrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/coord"
)

func trace2D(t *testing.T, x0, y0, xf, yf float64) []coord.Coord {
	t.Helper()
	r, err := New(2, coord.MustNewPoint(x0, y0), coord.MustNewPoint(xf, yf))
	require.NoError(t, err)
	return r.Trace()
}

func TestNew_DimensionMismatch(t *testing.T) {
	_, err := New(3, coord.MustNewPoint(0, 0), coord.MustNewPoint(1, 1))
	assert.Error(t, err)
}

func TestAxisAlignedRay_CellCount(t *testing.T) {
	// Non-integer-aligned orthogonal axis avoids the degenerate doubling
	// so P4 ("exactly |Δx_k| distinct cells") applies directly.
	cells := trace2D(t, 0.5, 0, 0.5, 5)
	assert.Len(t, cells, 5)
	for z := int64(0); z < 5; z++ {
		assert.Contains(t, cells, coord.MustNew(0, z))
	}
}

func TestAxisAlignedRay_DegenerateOrthogonalAxisDoubles(t *testing.T) {
	// x0 integer-aligned on the stationary axis: P4's "2x" clause.
	cells := trace2D(t, 0, 0, 0, 3)
	assert.Len(t, cells, 6)
}

func TestS6_IntegerStartDiagonalFrontIsSingleCell(t *testing.T) {
	r, err := New(2, coord.MustNewPoint(0, 0), coord.MustNewPoint(3, 3))
	require.NoError(t, err)
	front := r.FrontCells()
	require.Len(t, front, 1)
	assert.Equal(t, coord.MustNew(0, 0), front[0])
}

func TestS4_AxisAlignedThreeDimensionalRay(t *testing.T) {
	// spec.md's S4 prose ("exactly 5 unique cells") is inconsistent with
	// its own §4.3 front-cell rule for a ray whose two stationary axes
	// both sit on an integer vertex at start: that configuration is
	// degenerate on both orthogonal axes and legitimately produces 2^2
	// front cells per step (see SPEC_FULL.md §5.3 / DESIGN.md). This
	// test checks the shape the rule actually implies: the moving axis
	// sweeps z in [0,4], and one of the 4 per-step sub-cells is always
	// the "all zero offset" cell (0,0,z) that a non-degenerate reading
	// of S4 describes.
	r, err := New(3, coord.MustNewPoint(0, 0, 0), coord.MustNewPoint(0, 0, 5))
	require.NoError(t, err)
	cells := r.Trace()

	for z := int64(0); z < 5; z++ {
		assert.Contains(t, cells, coord.MustNew(0, 0, z))
	}
	assert.Len(t, cells, 5*4)
}

func TestZeroLengthRay_IntegerVertexFront(t *testing.T) {
	r, err := New(2, coord.MustNewPoint(2, 3), coord.MustNewPoint(2, 3))
	require.NoError(t, err)
	assert.True(t, r.Reached())
	cells := r.Trace()
	assert.Len(t, cells, 4) // 2^2: integer-aligned on both axes
}

func TestZeroLengthRay_NonIntegerFrontIsSingleCell(t *testing.T) {
	r, err := New(2, coord.MustNewPoint(2.5, 3.5), coord.MustNewPoint(2.5, 3.5))
	require.NoError(t, err)
	cells := r.Trace()
	require.Len(t, cells, 1)
	assert.Equal(t, coord.MustNew(2, 3), cells[0])
}

func TestP3_ReversalSymmetry(t *testing.T) {
	a := trace2D(t, 0.3, 0.7, 4.6, 2.1)
	r2, err := New(2, coord.MustNewPoint(4.6, 2.1), coord.MustNewPoint(0.3, 0.7))
	require.NoError(t, err)
	b := r2.Trace()

	assert.ElementsMatch(t, a, b)
}

func TestP2_AdvanceInvariant(t *testing.T) {
	r, err := New(2, coord.MustNewPoint(0.1, 0.1), coord.MustNewPoint(3.7, 1.2))
	require.NoError(t, err)

	for !r.Reached() {
		preD := r.d
		ok := r.Advance()
		require.True(t, ok)

		minD := preD[0]
		for i := 1; i < r.n; i++ {
			if preD[i] < minD {
				minD = preD[i]
			}
		}
		assert.InDelta(t, minD, r.t, 1e-9)
	}
}

func TestDiagonalRay_LooseTwoTouchesBothAxesAtOnce(t *testing.T) {
	r, err := New(2, coord.MustNewPoint(0.5, 0.5), coord.MustNewPoint(2.5, 2.5))
	require.NoError(t, err)

	require.True(t, r.Advance())
	// A perfect diagonal crosses both hyperplanes simultaneously.
	assert.Equal(t, int64(1), r.y[0])
	assert.Equal(t, int64(1), r.y[1])
}

func TestReached_NegativeDirection(t *testing.T) {
	r, err := New(2, coord.MustNewPoint(4.5, 4.5), coord.MustNewPoint(0.5, 0.5))
	require.NoError(t, err)
	cells := r.Trace()
	for i := int64(0); i < 4; i++ {
		assert.Contains(t, cells, coord.MustNew(i, i))
	}
}
