// Package raytrace implements the N-dimensional incremental raytracer
// (C3): an Amanatides-&-Woo-style digital differential analyzer
// generalized to arbitrary dimension.
//
// Grounded in itohio-EasyRobot's pkg/core/math/grid/raycast.go, whose
// RayProjection walks a 2D Bresenham line step by step against an
// occupancy matrix; this package keeps that "incremental state machine
// driven by Advance" idiom but replaces Bresenham's integer error
// accumulator with the parametric-distance bookkeeping (D, D0, y, k)
// that an exact multi-cell "front" per crossing requires, since
// Bresenham only ever visits one cell per step and cannot express
// simultaneous hyperplane crossings or degenerate axis-aligned fronts.
package raytrace

import (
	"fmt"
	"math"

	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/coord"
)

// Raytracer owns the incremental state of a single ray from x0 to xf.
// Not safe for concurrent use; each ray gets its own instance (spec.md
// §5).
type Raytracer struct {
	n      int
	x0     coord.Point // start
	xf     coord.Point // end
	deltaX coord.Point // xf - x0
	length float64     // ||deltaX||

	sign [coord.MaxDim]int8    // -1, 0, +1 per axis
	y    [coord.MaxDim]int64   // current corner
	k    [coord.MaxDim]int64   // crossings recorded per axis
	d    [coord.MaxDim]float64 // parametric distance to next crossing per axis
	d0   [coord.MaxDim]float64 // initial D snapshot

	t float64 // current parametric position in [0, 1] (or >= 1 once reached)
}

// New builds a Raytracer from start to end. Both points must have the
// same dimensionality N; N must also be passed explicitly so that a
// caller-declared dimension mismatch is caught even when both points
// happen to share a (wrong) arity.
func New(dimensions int, start, end coord.Point) (*Raytracer, error) {
	if start.N != dimensions || end.N != dimensions {
		return nil, fmt.Errorf("raytrace: dimension mismatch: declared %d, start has %d, end has %d", dimensions, start.N, end.N)
	}
	if dimensions <= 0 || dimensions > coord.MaxDim {
		return nil, fmt.Errorf("raytrace: dimensions must be in [1, %d], got %d", coord.MaxDim, dimensions)
	}

	r := &Raytracer{
		n:  dimensions,
		x0: start,
		xf: end,
	}
	r.deltaX = end.Sub(start)
	r.length = r.deltaX.Norm()

	for i := 0; i < dimensions; i++ {
		dx := r.deltaX.V[i]
		switch {
		case dx > coord.Epsilon:
			r.sign[i] = 1
			r.y[i] = int64(math.Floor(start.V[i]))
			r.d[i] = (float64(r.y[i]) + 1 - start.V[i]) / dx
		case dx < -coord.Epsilon:
			r.sign[i] = -1
			r.y[i] = int64(math.Ceil(start.V[i]))
			r.d[i] = (float64(r.y[i]) - 1 - start.V[i]) / dx
		default:
			r.sign[i] = 0
			r.y[i] = int64(math.Floor(start.V[i]))
			r.d[i] = math.Inf(1)
		}

		if math.Abs(r.d[i]) < coord.Epsilon && math.Abs(dx) > coord.Epsilon {
			r.d[i] = 1.0 / math.Abs(dx)
		}
	}
	r.d0 = r.d

	if r.length == 0 {
		r.t = 0
	}

	return r, nil
}

// Reached reports whether the ray has arrived at (or passed) the goal.
func (r *Raytracer) Reached() bool {
	return r.t >= 1 || r.length == 0
}

// T returns the current parametric position along the ray.
func (r *Raytracer) T() float64 { return r.t }

// Length returns the traveled distance so far (t * total ray length).
func (r *Raytracer) Length() float64 { return r.t * r.length }

// Coords returns the current world-space position of the ray.
func (r *Raytracer) Coords() coord.Point {
	if r.length == 0 {
		return r.x0
	}
	var p coord.Point
	p.N = r.n
	frac := r.Length() / r.length
	for i := 0; i < r.n; i++ {
		p.V[i] = r.x0.V[i] + frac*r.deltaX.V[i]
	}
	return p
}

// FrontCells returns the set of lattice cells incident to the current
// corner y that lie on the forward side of the ray (spec.md §4.3
// "Front cells at a position"). Returns nil once Reached() is true, per
// the degenerate-at-goal behavior of the algorithm this package
// generalizes (utils/raytracer.py's front_cells/trace interaction;
// trace() still records the cells visited on the final approach step,
// satisfying P1's full-segment coverage).
func (r *Raytracer) FrontCells() []coord.Coord {
	if r.Reached() {
		return nil
	}
	return r.computeFront()
}

// InitialFront returns the front cells at the ray's current state without
// gating on Reached(). It exists for the zero-length-ray edge case
// (spec.md §4.3 "Zero-length ray"), where the ray is Reached() from
// construction but callers — this package's own Trace(), and
// pkg/core/cartograph — still need the set of cells incident to x0.
func (r *Raytracer) InitialFront() []coord.Coord {
	return r.computeFront()
}

func (r *Raytracer) computeFront() []coord.Coord {
	var offsets [][coord.MaxDim]int64
	var buf [coord.MaxDim]int64
	var rec func(axis int)
	rec = func(axis int) {
		if axis == r.n {
			cp := buf
			offsets = append(offsets, cp)
			return
		}

		deltaZero := math.Abs(r.deltaX.V[axis]) < coord.Epsilon
		x0Integer := r.x0.IsIntegral(axis)

		if deltaZero && x0Integer {
			buf[axis] = -1
			rec(axis + 1)
			buf[axis] = 0
			rec(axis + 1)
			return
		}

		if r.sign[axis] < 0 {
			buf[axis] = -1
		} else {
			buf[axis] = 0
		}
		rec(axis + 1)
	}
	rec(0)

	cells := make([]coord.Coord, 0, len(offsets))
	for _, off := range offsets {
		var c coord.Coord
		c.N = r.n
		for i := 0; i < r.n; i++ {
			c.V[i] = r.y[i] + off[i]
		}
		cells = append(cells, c)
	}
	return cells
}

// Advance moves the ray to its next grid crossing. It picks the axis
// with smallest D, sets t to that value, and atomically updates every
// axis whose D is within Epsilon of the new t (spec.md §4.3
// "Advancing" — the near-simultaneous check that makes diagonal rays
// cross multiple hyperplanes correctly in a single step). Returns false
// if the ray has already reached the goal.
func (r *Raytracer) Advance() bool {
	if r.Reached() {
		return false
	}

	minD := math.Inf(1)
	for i := 0; i < r.n; i++ {
		if r.d[i] < minD {
			minD = r.d[i]
		}
	}
	r.t = minD

	for j := 0; j < r.n; j++ {
		if math.Abs(r.d[j]-r.t) < coord.Epsilon && r.sign[j] != 0 {
			r.y[j] += int64(r.sign[j])
			r.k[j]++
			r.d[j] = r.d0[j] + float64(r.k[j])/math.Abs(r.deltaX.V[j])
		}
	}

	return true
}

// Trace runs the ray to completion and returns the union of front-cell
// sets visited at t=0 and at every crossing before the goal, with
// duplicates discarded (spec.md §4.3 "trace()"). The final t>=1
// position adds no cells, since FrontCells returns nil once Reached().
// A zero-length ray returns the cells incident to x0.
func (r *Raytracer) Trace() []coord.Coord {
	seen := make(map[coord.Coord]struct{})
	var order []coord.Coord
	add := func(cells []coord.Coord) {
		for _, c := range cells {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			order = append(order, c)
		}
	}

	if r.length == 0 {
		add(r.InitialFront())
		return order
	}

	for !r.Reached() {
		add(r.FrontCells())
		if !r.Advance() {
			break
		}
	}
	add(r.FrontCells())

	return order
}
