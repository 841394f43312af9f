// Package cartograph implements the Cartographer (C4): it walks a single
// ray across an occupancy grid and reports the swept corridor of cells
// the ray actually passes through, failing closed the moment a front has
// no accessible cell or loses step-by-step reachability from the
// previous front.
//
// Grounded in original_source/utils/cartographer.py's map() loop (the
// prev/curr front bookkeeping and the success/failure result shape) and
// itohio-EasyRobot's x/math/graph/bfs.go for the local reachability scan
// (a plain FIFO BFS over a bounded region, the same queue/visited-map
// idiom generalized from graph.Node to coord.Coord).
package cartograph

import (
	"fmt"
	"math"

	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/coord"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/grid"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/logger"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/raytrace"
)

// Policy selects how strictly a front must connect to the previous one.
type Policy int

const (
	// PolicyFilterReachable requires every surviving front cell to be
	// reachable from the previous front via a local BFS (spec.md §4.4's
	// standardized rule). This is the default.
	PolicyFilterReachable Policy = iota
	// PolicyAnyAccessible only requires a front to have at least one
	// in-bounds, unoccupied cell; it never runs the local reachability
	// scan. This mirrors the weaker rule the Planner (C5) uses for edge
	// feasibility (spec.md §4.5 step 4 / §9 Open Questions).
	PolicyAnyAccessible
)

func (p Policy) String() string {
	switch p {
	case PolicyFilterReachable:
		return "filter-reachable"
	case PolicyAnyAccessible:
		return "any-accessible"
	default:
		return "unknown"
	}
}

// Position snapshots the raytracer's state at the point Cartograph
// stopped.
type Position struct {
	Coords  coord.Point
	T       float64
	Reached bool
}

// Result is the outcome of a Cartograph call (spec.md §6).
type Result struct {
	Success        bool
	TraversedCells []coord.Coord
	Position       Position
	Error          string
}

// Cartograph traces one ray from start to end over g and returns the
// swept corridor (spec.md §4.4). policy controls how a front connects to
// its predecessor; callers wanting the standardized behavior should pass
// PolicyFilterReachable.
func Cartograph(start, end coord.Point, g *grid.Grid, policy Policy) Result {
	r, err := raytrace.New(g.Dimensions(), start, end)
	if err != nil {
		logger.Log.Error().Err(err).Msg("cartograph: raytracer construction failed")
		return Result{Error: fmt.Sprintf("raytracer construction failed: %v", err)}
	}

	var traversed []coord.Coord
	seen := make(map[coord.Coord]struct{})
	addAll := func(cells []coord.Coord) {
		for _, c := range cells {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			traversed = append(traversed, c)
		}
	}

	snapshot := func() Position {
		return Position{Coords: r.Coords(), T: r.T(), Reached: r.Reached()}
	}

	fail := func(reason string) Result {
		logger.Log.Warn().Str("reason", reason).Msg("cartograph: corridor blocked")
		return Result{Success: false, TraversedCells: traversed, Position: snapshot(), Error: reason}
	}

	step := func(front []coord.Coord, prev []coord.Coord) ([]coord.Coord, *Result) {
		curr := accessible(front, g)
		if len(curr) == 0 {
			res := fail("no accessible front cells")
			return nil, &res
		}
		if policy == PolicyFilterReachable && len(prev) > 0 {
			curr = filterReachable(prev, curr, g)
			if len(curr) == 0 {
				res := fail("front not reachable")
				return nil, &res
			}
		}
		addAll(curr)
		return curr, nil
	}

	var prev []coord.Coord

	if r.Length() == 0 && r.Reached() {
		// Zero-length ray: InitialFront() bypasses the Reached() gate
		// FrontCells() applies (spec.md §4.3 "Zero-length ray").
		if _, failRes := step(r.InitialFront(), prev); failRes != nil {
			return *failRes
		}
		return Result{Success: true, TraversedCells: traversed, Position: snapshot()}
	}

	for !r.Reached() {
		curr, failRes := step(r.FrontCells(), prev)
		if failRes != nil {
			return *failRes
		}
		prev = curr
		if !r.Advance() {
			break
		}
	}

	if !r.Reached() {
		if _, failRes := step(r.FrontCells(), prev); failRes != nil {
			return *failRes
		}
	}

	return Result{Success: true, TraversedCells: traversed, Position: snapshot()}
}

// accessible filters front cells to those in-bounds and unoccupied,
// preserving the input order.
func accessible(cells []coord.Coord, g *grid.Grid) []coord.Coord {
	out := make([]coord.Coord, 0, len(cells))
	for _, c := range cells {
		if !g.Occupied(c) {
			out = append(out, c)
		}
	}
	return out
}

// filterReachable runs the local reachability BFS described in spec.md
// §4.4: within the axis-aligned bounding box of prev ∪ curr, BFS from
// every cell in prev using g's valid directions, and keep only the curr
// cells actually reached.
func filterReachable(prev, curr []coord.Coord, g *grid.Grid) []coord.Coord {
	n := g.Dimensions()
	var lo, hi [coord.MaxDim]int64
	for i := 0; i < n; i++ {
		lo[i] = math.MaxInt64
		hi[i] = math.MinInt64
	}
	grow := func(c coord.Coord) {
		for i := 0; i < n; i++ {
			if c.V[i] < lo[i] {
				lo[i] = c.V[i]
			}
			if c.V[i] > hi[i] {
				hi[i] = c.V[i]
			}
		}
	}
	for _, c := range prev {
		grow(c)
	}
	for _, c := range curr {
		grow(c)
	}
	inBox := func(c coord.Coord) bool {
		for i := 0; i < n; i++ {
			if c.V[i] < lo[i] || c.V[i] > hi[i] {
				return false
			}
		}
		return true
	}

	inCurr := make(map[coord.Coord]bool, len(curr))
	for _, c := range curr {
		inCurr[c] = true
	}

	visited := make(map[coord.Coord]bool)
	var queue []coord.Coord
	for _, c := range prev {
		if !visited[c] {
			visited[c] = true
			queue = append(queue, c)
		}
	}

	reached := make(map[coord.Coord]bool)
	dirs := g.ValidDirections()
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if inCurr[c] {
			reached[c] = true
		}
		for _, d := range dirs {
			nb := c.Add(d)
			if !inBox(nb) || visited[nb] || g.Occupied(nb) {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}

	out := make([]coord.Coord, 0, len(curr))
	for _, c := range curr {
		if reached[c] {
			out = append(out, c)
		}
	}
	return out
}
