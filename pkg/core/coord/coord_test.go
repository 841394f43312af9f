package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DimensionLimit(t *testing.T) {
	vals := make([]int64, MaxDim+1)
	_, err := New(vals...)
	require.Error(t, err)
}

func TestCoord_Equal(t *testing.T) {
	a := MustNew(1, 2, 3)
	b := MustNew(1, 2, 3)
	c := MustNew(1, 2, 4)
	assert.True(t, a.Equal(b))
	assert.True(t, a == b)
	assert.False(t, a.Equal(c))
}

func TestCoord_AddSub(t *testing.T) {
	a := MustNew(1, 2, 3)
	d := MustNew(-1, 0, 1)
	sum := a.Add(d)
	assert.Equal(t, MustNew(0, 2, 4), sum)
	assert.Equal(t, a, sum.Sub(d))
}

func TestCoord_Hamming(t *testing.T) {
	assert.Equal(t, 0, MustNew(0, 0, 0).Hamming())
	assert.Equal(t, 2, MustNew(1, 0, -1).Hamming())
}

func TestCoord_CellCenterAndVertexPoint(t *testing.T) {
	c := MustNew(2, 3)
	assert.Equal(t, MustNewPoint(2.5, 3.5), c.CellCenter())
	assert.Equal(t, MustNewPoint(2, 3), c.VertexPoint())
}

func TestPoint_DistanceAndFloor(t *testing.T) {
	p := MustNewPoint(0, 0)
	q := MustNewPoint(3, 4)
	assert.InDelta(t, 5.0, p.Distance(q), 1e-12)

	f := MustNewPoint(1.9, -0.1).Floor()
	assert.Equal(t, MustNew(1, -1), f)
}

func TestPoint_IsIntegral(t *testing.T) {
	p := MustNewPoint(2.0, 2.0000000001, 2.5)
	assert.True(t, p.IsIntegral(0))
	assert.True(t, p.IsIntegral(1))
	assert.False(t, p.IsIntegral(2))
}

func TestCoord_UsableAsMapKey(t *testing.T) {
	m := map[Coord]bool{}
	m[MustNew(1, 1)] = true
	_, ok := m[MustNew(1, 1)]
	assert.True(t, ok)
}
