// Package planner implements the BFS path planner (C5): breadth-first
// search over a grid lattice (cell or vertex) whose edges are accepted or
// rejected by tracing a ray between neighboring lattice points and
// checking that at least one of the cells it sweeps is accessible.
//
// Grounded in itohio-EasyRobot's x/math/graph/bfs.go (the reusable
// queue/visited/prev-map BFS struct with a clear()-and-reuse idiom) and
// original_source/algo/bfs.py (the raytracer-backed edge feasibility
// check and the best-effort attempted-path fallback), adapted from the
// teacher's generic graph.Node interface to grid.Coord-typed lattice
// points since the edge predicate here is geometric, not graph-supplied.
package planner

import (
	"fmt"
	"math"

	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/coord"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/grid"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/logger"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/raytrace"
)

// BFS is a reusable breadth-first search instance bound to one grid and
// mode. Call Plan repeatedly; each call gets a fresh node table so
// results are idempotent (spec.md §8 P5) and independent of prior calls.
type BFS struct {
	grid *grid.Grid
	mode grid.Mode

	nodes *grid.NodeTable
	queue []coord.Coord
}

// NewBFS creates a BFS planner over g using the given lattice mode.
func NewBFS(g *grid.Grid, mode grid.Mode) *BFS {
	return &BFS{
		grid:  g,
		mode:  mode,
		queue: make([]coord.Coord, 0, 64),
	}
}

// Plan searches for a path from start to end (spec.md §4.5). On success
// it returns the ordered world-coordinate path from start to end. If the
// search exhausts all reachable nodes without finding end, it returns a
// best-effort attempted path to the expanded node closest to end in
// Euclidean distance, per spec.md §7 "No-solution" — this is not an
// error.
func (b *BFS) Plan(start, end coord.Coord) ([]coord.Point, error) {
	if err := b.validate(start, end); err != nil {
		return nil, err
	}

	b.nodes = grid.NewNodeTable(b.mode, b.grid.Bounds(b.mode))
	b.queue = b.queue[:0]

	startNode, err := b.nodes.Get(start)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	startNode.Expanded = true
	b.queue = append(b.queue, start)

	dirs := b.grid.ValidDirections()

	for len(b.queue) > 0 {
		u := b.queue[0]
		b.queue = b.queue[1:]

		if u == end {
			logger.Log.Debug().Msg("planner: goal reached")
			return b.reconstructPath(end), nil
		}

		for _, d := range dirs {
			v := u.Add(d)
			if !b.grid.InBounds(v, b.mode) {
				continue
			}
			vn, err := b.nodes.Get(v)
			if err != nil {
				continue
			}
			if vn.Expanded {
				continue
			}
			if !b.edgeFeasible(u, v) {
				continue
			}
			vn.Parent = u
			vn.HasParent = true
			vn.Expanded = true
			b.queue = append(b.queue, v)
		}
	}

	logger.Log.Warn().Msg("planner: queue exhausted without reaching goal, returning attempted path")
	return b.bestEffort(end), nil
}

func (b *BFS) validate(start, end coord.Coord) error {
	n := b.grid.Dimensions()
	if start.N != n || end.N != n {
		return fmt.Errorf("planner: arity mismatch: grid has %d dimensions, start has %d, end has %d", n, start.N, end.N)
	}
	if !b.grid.InBounds(start, b.mode) {
		return fmt.Errorf("planner: start %v is out of %s bounds", start.Slice(), b.mode)
	}
	if !b.grid.InBounds(end, b.mode) {
		return fmt.Errorf("planner: end %v is out of %s bounds", end.Slice(), b.mode)
	}
	if b.mode == grid.Cell {
		if b.grid.Occupied(start) {
			return fmt.Errorf("planner: start cell %v is occupied", start.Slice())
		}
		if b.grid.Occupied(end) {
			return fmt.Errorf("planner: end cell %v is occupied", end.Slice())
		}
	}
	return nil
}

// edgeFeasible implements spec.md §4.5 step 4: trace a ray between u and
// v's world coordinates; in cell mode u's own cell is removed from the
// intersected set (self-start is trivially accessible); the edge is
// accepted iff at least one remaining intersected cell is in-bounds and
// unoccupied. A raytracer construction error is treated as a blocked
// edge, not a propagated failure (spec.md §7 "Failure semantics").
func (b *BFS) edgeFeasible(u, v coord.Coord) bool {
	r, err := raytrace.New(b.grid.Dimensions(), worldPoint(u, b.mode), worldPoint(v, b.mode))
	if err != nil {
		return false
	}
	for _, c := range r.Trace() {
		if b.mode == grid.Cell && c == u {
			continue
		}
		if !b.grid.Occupied(c) {
			return true
		}
	}
	return false
}

func (b *BFS) reconstructPath(end coord.Coord) []coord.Point {
	var cells []coord.Coord
	cur := end
	for {
		cells = append(cells, cur)
		n, err := b.nodes.Get(cur)
		if err != nil || !n.HasParent {
			break
		}
		cur = n.Parent
	}

	path := make([]coord.Point, len(cells))
	for i, c := range cells {
		path[i] = worldPoint(cells[len(cells)-1-i], b.mode)
	}
	return path
}

// bestEffort reconstructs a path to the expanded node closest to end in
// Euclidean distance, breaking ties by taking the first such node seen
// in insertion order (original_source/algo/bfs.py's
// _get_attempted_path tie-break, see SPEC_FULL.md §4).
func (b *BFS) bestEffort(end coord.Coord) []coord.Point {
	endWorld := worldPoint(end, b.mode)

	var best coord.Coord
	bestDist := math.Inf(1)
	found := false

	b.nodes.Expanded(func(c coord.Coord, n *grid.Node) bool {
		d := worldPoint(c, b.mode).Distance(endWorld)
		if d < bestDist {
			bestDist = d
			best = c
			found = true
		}
		return true
	})

	if !found {
		return nil
	}
	return b.reconstructPath(best)
}

func worldPoint(c coord.Coord, mode grid.Mode) coord.Point {
	if mode == grid.Cell {
		return c.CellCenter()
	}
	return c.VertexPoint()
}
