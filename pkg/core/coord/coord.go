// Package coord provides the fixed-capacity, comparable N-dimensional
// coordinate types shared by the grid, raytracer, cartographer and
// planner. Coordinates are stack-allocated fixed arrays rather than
// slices, following the teacher's vec.Vector2D/Vector3D/Vector4D
// convention of preferring stack-allocated, comparable, hashable types
// over heap-backed slices wherever a size bound is acceptable; here the
// bound is MaxDim rather than a literal 2/3/4, since the grid itself is
// N-dimensional at runtime.
package coord

import "math"

// MaxDim bounds the dimensionality any Coord/Point can carry. It is
// generous for the lattices this package is meant to plan over (paths
// through 2D/3D/4D occupancy grids); dimensions beyond MaxDim would need
// a heap-backed variant, which this package deliberately does not
// provide (see spec.md §9 "Dynamic arity").
const MaxDim = 8

// Epsilon is the floating point tolerance used throughout the raytracer
// and its callers for sign/zero/integrality comparisons.
const Epsilon = 1e-8

// Coord is an integer lattice coordinate (a cell index or a vertex).
// It is a value type and a valid map key: two Coords with the same N
// and the same leading N components compare equal with ==.
type Coord struct {
	N int
	V [MaxDim]int64
}

// New builds a Coord from the given components. Returns an error if
// len(vals) exceeds MaxDim.
func New(vals ...int64) (Coord, error) {
	var c Coord
	if len(vals) > MaxDim {
		return c, errTooManyDims(len(vals))
	}
	c.N = len(vals)
	copy(c.V[:], vals)
	return c, nil
}

// MustNew is New but panics on error; meant for tests and literals.
func MustNew(vals ...int64) Coord {
	c, err := New(vals...)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the i-th component, or 0 if i is out of [0, N).
func (c Coord) Get(i int) int64 {
	if i < 0 || i >= c.N {
		return 0
	}
	return c.V[i]
}

// Slice returns the coordinate's components as a freshly allocated
// slice of length N.
func (c Coord) Slice() []int64 {
	out := make([]int64, c.N)
	copy(out, c.V[:c.N])
	return out
}

// Add returns c + d component-wise. Panics if the dimensions differ.
func (c Coord) Add(d Coord) Coord {
	if c.N != d.N {
		panic("coord: dimension mismatch in Add")
	}
	out := c
	for i := 0; i < c.N; i++ {
		out.V[i] = c.V[i] + d.V[i]
	}
	return out
}

// Sub returns c - d component-wise. Panics if the dimensions differ.
func (c Coord) Sub(d Coord) Coord {
	if c.N != d.N {
		panic("coord: dimension mismatch in Sub")
	}
	out := c
	for i := 0; i < c.N; i++ {
		out.V[i] = c.V[i] - d.V[i]
	}
	return out
}

// Hamming returns the number of nonzero components.
func (c Coord) Hamming() int {
	n := 0
	for i := 0; i < c.N; i++ {
		if c.V[i] != 0 {
			n++
		}
	}
	return n
}

// Equal reports whether c and d denote the same coordinate. Provided
// for readability at call sites; c == d is equivalent since Coord is a
// comparable array-backed value type.
func (c Coord) Equal(d Coord) bool {
	return c == d
}

// CellCenter maps a cell-mode coordinate to its world-space point
// (the cell's center, c + 0.5 per axis).
func (c Coord) CellCenter() Point {
	var p Point
	p.N = c.N
	for i := 0; i < c.N; i++ {
		p.V[i] = float64(c.V[i]) + 0.5
	}
	return p
}

// VertexPoint maps a vertex-mode coordinate to its world-space point
// (the identity mapping, the integer vertex itself).
func (c Coord) VertexPoint() Point {
	var p Point
	p.N = c.N
	for i := 0; i < c.N; i++ {
		p.V[i] = float64(c.V[i])
	}
	return p
}

// Point is a floating point N-dimensional world coordinate.
type Point struct {
	N int
	V [MaxDim]float64
}

// NewPoint builds a Point from the given components. Returns an error
// if len(vals) exceeds MaxDim.
func NewPoint(vals ...float64) (Point, error) {
	var p Point
	if len(vals) > MaxDim {
		return p, errTooManyDims(len(vals))
	}
	p.N = len(vals)
	copy(p.V[:], vals)
	return p, nil
}

// MustNewPoint is NewPoint but panics on error; meant for tests and
// literals.
func MustNewPoint(vals ...float64) Point {
	p, err := NewPoint(vals...)
	if err != nil {
		panic(err)
	}
	return p
}

// Get returns the i-th component, or 0 if i is out of [0, N).
func (p Point) Get(i int) float64 {
	if i < 0 || i >= p.N {
		return 0
	}
	return p.V[i]
}

// Sub returns p - q component-wise. Panics if the dimensions differ.
func (p Point) Sub(q Point) Point {
	if p.N != q.N {
		panic("coord: dimension mismatch in Sub")
	}
	out := p
	for i := 0; i < p.N; i++ {
		out.V[i] = p.V[i] - q.V[i]
	}
	return out
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	var sum float64
	for i := 0; i < p.N; i++ {
		sum += p.V[i] * p.V[i]
	}
	return math.Sqrt(sum)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Norm()
}

// Floor returns the per-axis floor of p as an integer Coord.
func (p Point) Floor() Coord {
	var c Coord
	c.N = p.N
	for i := 0; i < p.N; i++ {
		c.V[i] = int64(math.Floor(p.V[i]))
	}
	return c
}

// IsIntegral reports whether component i is within Epsilon of an
// integer value.
func (p Point) IsIntegral(i int) bool {
	v := p.Get(i)
	return math.Abs(v-math.Round(v)) < Epsilon
}

type errTooManyDims int

func (e errTooManyDims) Error() string {
	return "coord: dimension count exceeds MaxDim"
}
