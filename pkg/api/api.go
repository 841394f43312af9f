// Package api exposes the three external entry points spec.md §6 names
// as pure functions of their inputs: RayTrace, Cartograph, and PlanPath.
// Each one glues the constituent packages (coord, grid, raytrace,
// cartograph, planner) together from the raw, wire-shaped inputs the
// specification describes, so a caller that only wants "plan a path
// through this occupancy array" never has to touch a Grid or a
// Raytracer directly.
package api

import (
	"fmt"

	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/cartograph"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/coord"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/grid"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/planner"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/raytrace"
)

// RayTrace traces a ray of the given dimensionality from start to end
// and returns the set of intersected cells. Callers needing the
// incremental interface (front_cells/advance/reached/coords) should
// construct a raytrace.Raytracer directly instead.
func RayTrace(dimensions int, start, end []float64) ([]coord.Coord, error) {
	s, err := coord.NewPoint(start...)
	if err != nil {
		return nil, fmt.Errorf("api: start: %w", err)
	}
	e, err := coord.NewPoint(end...)
	if err != nil {
		return nil, fmt.Errorf("api: end: %w", err)
	}
	r, err := raytrace.New(dimensions, s, e)
	if err != nil {
		return nil, err
	}
	return r.Trace(), nil
}

// GridSpec describes the occupancy lattice inputs shared by Cartograph
// and PlanPath (spec.md §6's occupancy/origin/loose triple, plus the
// shape needed to interpret a flat Occupancy slice).
type GridSpec struct {
	Shape     []int64
	Origin    []int64 // nil means the zero vector
	Loose     int
	Occupancy []bool
}

func (s GridSpec) build() (*grid.Grid, error) {
	return grid.New(s.Shape, s.Origin, s.Loose, s.Occupancy)
}

// Cartograph traces one ray through a grid built from spec and returns
// the swept corridor (spec.md §6 "Cartograph"). It always uses
// cartograph.PolicyFilterReachable, the standardized policy; callers
// wanting PolicyAnyAccessible should call cartograph.Cartograph
// directly against a grid.Grid they construct themselves.
func Cartograph(start, end []float64, spec GridSpec) (cartograph.Result, error) {
	g, err := spec.build()
	if err != nil {
		return cartograph.Result{}, err
	}
	s, err := coord.NewPoint(start...)
	if err != nil {
		return cartograph.Result{}, fmt.Errorf("api: start: %w", err)
	}
	e, err := coord.NewPoint(end...)
	if err != nil {
		return cartograph.Result{}, fmt.Errorf("api: end: %w", err)
	}
	return cartograph.Cartograph(s, e, g, cartograph.PolicyFilterReachable), nil
}

// PlanPath runs a BFS plan from start to end over a grid built from spec
// (spec.md §6 "PlanPath"). algorithm must be "bfs"; mode must be "cell"
// or "vertex". Returns an empty path and an error on validation failure;
// a non-empty best-effort path on no-solution (not an error, see
// spec.md §7).
func PlanPath(start, end []int64, spec GridSpec, algorithm, mode string) ([]coord.Point, error) {
	if algorithm != "bfs" {
		return nil, fmt.Errorf("api: unsupported algorithm %q, want \"bfs\"", algorithm)
	}
	m, err := grid.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	g, err := spec.build()
	if err != nil {
		return nil, err
	}
	sc, err := coord.New(start...)
	if err != nil {
		return nil, fmt.Errorf("api: start: %w", err)
	}
	ec, err := coord.New(end...)
	if err != nil {
		return nil, fmt.Errorf("api: end: %w", err)
	}
	b := planner.NewBFS(g, m)
	return b.Plan(sc, ec)
}
