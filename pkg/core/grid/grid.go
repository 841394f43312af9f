// Package grid implements the occupancy grid (C1) and the sparse node
// table (C2) that the raytracer, cartographer and planner build on.
//
// Grounded in itohio-EasyRobot's x/math/grid (extract.go's bounds
// bookkeeping, grid_graph.go's direction-enumeration idiom) and
// x/math/graph/grid_graph.go, generalized from the teacher's fixed 2D
// row/col grid to an arbitrary N-dimensional lattice as spec.md §4.1
// requires.
package grid

import (
	"fmt"

	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/coord"
)

// Grid is an immutable N-dimensional boolean occupancy lattice.
//
// Storage layout follows spec.md §6: the backing Occupancy slice is
// row-major with the slowest-varying storage axis corresponding to the
// *last* world axis (axis N-1) and the fastest-varying (contiguous)
// storage axis corresponding to world axis 0. This reversal is applied
// consistently by Occupied/storageIndex and nowhere else, so bounds
// checks always compare against Shape in world-axis order.
type Grid struct {
	n          int
	shape      coord.Coord // per-axis cell counts, world order
	origin     coord.Coord
	loose      int
	occupancy  []bool
	strideWorld [coord.MaxDim]int64
	directions []coord.Coord
}

// New builds an occupancy Grid. shape gives the number of cells per
// world axis; occupancy must have len(occupancy) == product(shape) and
// be laid out row-major with world axis N-1 slowest-varying and world
// axis 0 fastest-varying (see the Grid doc comment). origin may be nil,
// meaning the zero vector. loose must be in [1, N] and N (len(shape))
// must be >= 2.
func New(shape []int64, origin []int64, loose int, occupancy []bool) (*Grid, error) {
	n := len(shape)
	if n < 2 {
		return nil, fmt.Errorf("grid: dimensions must be >= 2, got %d", n)
	}
	if n > coord.MaxDim {
		return nil, fmt.Errorf("grid: dimensions %d exceeds MaxDim %d", n, coord.MaxDim)
	}
	if loose < 1 || loose > n {
		return nil, fmt.Errorf("grid: loose must be in [1, %d], got %d", n, loose)
	}
	for i, s := range shape {
		if s <= 0 {
			return nil, fmt.Errorf("grid: shape[%d] must be positive, got %d", i, s)
		}
	}

	shapeCoord, err := coord.New(shape...)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}

	var originCoord coord.Coord
	if origin == nil {
		originCoord, _ = coord.New(make([]int64, n)...)
	} else {
		if len(origin) != n {
			return nil, fmt.Errorf("grid: origin length %d must equal dimensions %d", len(origin), n)
		}
		originCoord, err = coord.New(origin...)
		if err != nil {
			return nil, fmt.Errorf("grid: %w", err)
		}
	}

	total := int64(1)
	for _, s := range shape {
		total *= s
	}
	if int64(len(occupancy)) != total {
		return nil, fmt.Errorf("grid: occupancy length %d does not match product of shape %d", len(occupancy), total)
	}

	g := &Grid{
		n:         n,
		shape:     shapeCoord,
		origin:    originCoord,
		loose:     loose,
		occupancy: occupancy,
	}
	g.computeStrides()
	g.directions = validDirections(n, loose)
	return g, nil
}

func (g *Grid) computeStrides() {
	// storageShape[j] = shape[n-1-j]; strideStorage is row-major over
	// storageShape; strideWorld[i] = strideStorage[n-1-i].
	var strideStorage [coord.MaxDim]int64
	strideStorage[g.n-1] = 1
	for j := g.n - 2; j >= 0; j-- {
		storageShapeJPlus1 := g.shape.Get(g.n - 1 - (j + 1))
		strideStorage[j] = strideStorage[j+1] * storageShapeJPlus1
	}
	for i := 0; i < g.n; i++ {
		g.strideWorld[i] = strideStorage[g.n-1-i]
	}
}

// Dimensions returns N.
func (g *Grid) Dimensions() int { return g.n }

// Shape returns the per-axis cell count, world order.
func (g *Grid) Shape() coord.Coord { return g.shape }

// Origin returns the configured origin.
func (g *Grid) Origin() coord.Coord { return g.origin }

// Loose returns the configured looseness.
func (g *Grid) Loose() int { return g.loose }

// ValidDirections returns the canonical, precomputed set of nonzero
// offsets in {-1,0,+1}^N whose Hamming weight is <= Loose, in
// lexicographic order over {-1,0,1}^N with the zero vector omitted
// (spec.md §5 ordering guarantee).
func (g *Grid) ValidDirections() []coord.Coord { return g.directions }

func validDirections(n, loose int) []coord.Coord {
	var out []coord.Coord
	var buf [coord.MaxDim]int64
	var rec func(axis int)
	rec = func(axis int) {
		if axis == n {
			c, _ := coord.New(buf[:n]...)
			if c.Hamming() == 0 {
				return
			}
			if c.Hamming() <= loose {
				out = append(out, c)
			}
			return
		}
		for _, v := range [3]int64{-1, 0, 1} {
			buf[axis] = v
			rec(axis + 1)
		}
	}
	rec(0)
	return out
}

// Occupied reports whether world-cell c is blocked. Out-of-bounds
// counts as occupied, per spec.md §4.1.
func (g *Grid) Occupied(c coord.Coord) bool {
	idx, ok := g.storageIndex(c)
	if !ok {
		return true
	}
	return g.occupancy[idx]
}

// storageIndex shifts c by the origin, bounds-checks against Shape in
// world-axis order, and returns the flat offset into Occupancy using
// the reversed-axis storage convention.
func (g *Grid) storageIndex(c coord.Coord) (int64, bool) {
	if c.N != g.n {
		return 0, false
	}
	var offset int64
	for i := 0; i < g.n; i++ {
		gi := c.V[i] - g.origin.V[i]
		if gi < 0 || gi >= g.shape.V[i] {
			return 0, false
		}
		offset += gi * g.strideWorld[i]
	}
	return offset, true
}

// InBounds reports whether c is within bounds for the given Mode: cell
// bounds are Shape, vertex bounds are Shape+1 per axis (spec.md §4.1).
func (g *Grid) InBounds(c coord.Coord, mode Mode) bool {
	if c.N != g.n {
		return false
	}
	for i := 0; i < g.n; i++ {
		bound := g.shape.V[i]
		if mode == Vertex {
			bound++
		}
		v := c.V[i]
		if v < 0 || v >= bound {
			return false
		}
	}
	return true
}

// Bounds returns the per-axis bound (exclusive) for the given mode.
func (g *Grid) Bounds(mode Mode) coord.Coord {
	b := g.shape
	if mode == Vertex {
		for i := 0; i < g.n; i++ {
			b.V[i]++
		}
	}
	return b
}
