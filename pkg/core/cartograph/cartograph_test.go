package cartograph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/coord"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/grid"
)

func emptyGrid(t *testing.T, shape []int64, loose int) *grid.Grid {
	t.Helper()
	total := int64(1)
	for _, s := range shape {
		total *= s
	}
	g, err := grid.New(shape, nil, loose, make([]bool, total))
	require.NoError(t, err)
	return g
}

func TestCartograph_OpenDiagonalSucceeds(t *testing.T) {
	g := emptyGrid(t, []int64{3, 3}, 1)
	res := Cartograph(coord.MustNewPoint(0.5, 0.5), coord.MustNewPoint(2.5, 2.5), g, PolicyFilterReachable)
	require.True(t, res.Success)
	assert.True(t, res.Position.Reached)
	assert.Contains(t, res.TraversedCells, coord.MustNew(0, 0))
	assert.Contains(t, res.TraversedCells, coord.MustNew(2, 2))
}

func TestCartograph_S5_BlockedCorridor(t *testing.T) {
	// S5: occupancy_grid = [[0,1,0],[1,1,1],[0,1,0]], rows=y, cols=x.
	occ := []bool{
		false, true, false, // y=0: x=0,1,2
		true, true, true, // y=1
		false, true, false, // y=2
	}
	g, err := grid.New([]int64{3, 3}, nil, 1, occ)
	require.NoError(t, err)

	res := Cartograph(coord.MustNewPoint(0.5, 0.5), coord.MustNewPoint(2.5, 2.5), g, PolicyFilterReachable)

	require.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.LessOrEqual(t, len(res.TraversedCells), 1)
	if len(res.TraversedCells) == 1 {
		assert.Equal(t, coord.MustNew(0, 0), res.TraversedCells[0])
	}
}

func TestCartograph_ZeroLengthRay(t *testing.T) {
	g := emptyGrid(t, []int64{3, 3}, 1)
	res := Cartograph(coord.MustNewPoint(1, 1), coord.MustNewPoint(1, 1), g, PolicyFilterReachable)
	require.True(t, res.Success)
	assert.True(t, res.Position.Reached)
	assert.Len(t, res.TraversedCells, 4) // integer vertex: 2^2 incident cells
}

func TestCartograph_ZeroLengthRay_AllIncidentOccupiedFails(t *testing.T) {
	occ := make([]bool, 9)
	occ[0] = true // world (0,0) storage index 0 occupied
	g, err := grid.New([]int64{3, 3}, nil, 1, occ)
	require.NoError(t, err)
	res := Cartograph(coord.MustNewPoint(0, 0), coord.MustNewPoint(0, 0), g, PolicyFilterReachable)
	// vertex (0,0) is incident to cells (-1,-1),(-1,0),(0,-1),(0,0); only
	// (0,0) is in-bounds and it is occupied, so no accessible front cell.
	require.False(t, res.Success)
}

func TestCartograph_FilterReachable_RejectsDisconnectedDiagonalHop(t *testing.T) {
	// loose=1 forbids the BFS from cutting the (0,0)->(1,1) diagonal
	// directly; both axis-aligned approaches are blocked, so (1,1) is
	// individually free but not locally reachable from (0,0).
	occ := []bool{
		false, true, false, // y=0
		true, false, false, // y=1
		false, false, false, // y=2
	}
	g, err := grid.New([]int64{3, 3}, nil, 1, occ)
	require.NoError(t, err)

	res := Cartograph(coord.MustNewPoint(0.5, 0.5), coord.MustNewPoint(2.5, 2.5), g, PolicyFilterReachable)
	require.False(t, res.Success)
	assert.Equal(t, "front not reachable", res.Error)
}

func TestCartograph_AnyAccessiblePolicySkipsReachabilityFilter(t *testing.T) {
	// Same grid as above: FilterReachable rejects it, but AnyAccessible
	// only requires each front to contain an individually accessible
	// cell and ignores the prev/curr connectivity check.
	occ := []bool{
		false, true, false,
		true, false, false,
		false, false, false,
	}
	g, err := grid.New([]int64{3, 3}, nil, 1, occ)
	require.NoError(t, err)

	res := Cartograph(coord.MustNewPoint(0.5, 0.5), coord.MustNewPoint(2.5, 2.5), g, PolicyAnyAccessible)
	assert.True(t, res.Success)
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "filter-reachable", PolicyFilterReachable.String())
	assert.Equal(t, "any-accessible", PolicyAnyAccessible.String())
}
