// Command gridtrace is the CLI front end for the raytracing
// cartographer/planner core: it loads a YAML scenario (shape, origin,
// loose, occupancy, start, end, mode) and runs either a Cartograph pass
// or a BFS plan against it, printing the result. It is the Go analogue
// of original_source/main.py's script entry point — no rendering, no
// plotting, no interactive editing (those remain out of scope).
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/api"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/coord"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/grid"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/logger"
	"github.com/ChingWhee/N-Dimensional-Raytracer/pkg/core/planner"
)

type scenario struct {
	Shape     []int64   `yaml:"shape"`
	Origin    []int64   `yaml:"origin"`
	Loose     int       `yaml:"loose"`
	Occupancy []bool    `yaml:"occupancy"`
	Start     []float64 `yaml:"start"`
	End       []float64 `yaml:"end"`
	Mode      string    `yaml:"mode"`
}

func loadScenario(path string) (scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, fmt.Errorf("gridtrace: reading scenario: %w", err)
	}
	var s scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return scenario{}, fmt.Errorf("gridtrace: parsing scenario: %w", err)
	}
	if s.Mode == "" {
		s.Mode = "cell"
	}
	return s, nil
}

func main() {
	file := flag.String("scenario", "", "Path to a YAML scenario file")
	op := flag.String("op", "plan", "Operation: plan | cartograph")
	concurrent := flag.Int("concurrent", 0, "Run N independent plans against the shared grid concurrently")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "gridtrace: -scenario is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s, err := loadScenario(*file)
	if err != nil {
		logger.Log.Error().Err(err).Msg("gridtrace: failed to load scenario")
		os.Exit(1)
	}

	spec := api.GridSpec{Shape: s.Shape, Origin: s.Origin, Loose: s.Loose, Occupancy: s.Occupancy}

	switch *op {
	case "cartograph":
		runCartograph(s, spec)
	case "plan":
		if *concurrent > 0 {
			runConcurrentPlans(s, spec, *concurrent)
		} else {
			runPlan(s, spec)
		}
	default:
		logger.Log.Error().Str("op", *op).Msg("gridtrace: unsupported operation")
		os.Exit(1)
	}
}

func runCartograph(s scenario, spec api.GridSpec) {
	log := logger.Log.With().Str("request_id", uuid.New().String()).Logger()
	log.Info().Msg("gridtrace: running cartograph")

	res, err := api.Cartograph(s.Start, s.End, spec)
	if err != nil {
		log.Error().Err(err).Msg("gridtrace: cartograph failed")
		os.Exit(1)
	}
	fmt.Printf("success=%v traversed=%v error=%q\n", res.Success, res.TraversedCells, res.Error)
}

func runPlan(s scenario, spec api.GridSpec) {
	log := logger.Log.With().Str("request_id", uuid.New().String()).Logger()
	log.Info().Msg("gridtrace: running planner")

	path, err := api.PlanPath(floatsToInts(s.Start), floatsToInts(s.End), spec, "bfs", s.Mode)
	if err != nil {
		log.Error().Err(err).Msg("gridtrace: plan failed")
		os.Exit(1)
	}
	fmt.Printf("path=%v\n", path)
}

// runConcurrentPlans demonstrates spec.md §5's concurrency model: the
// Grid is read-only and shared by reference across N goroutines, each
// owning its own BFS (and therefore its own Node table); no locking is
// needed.
func runConcurrentPlans(s scenario, spec api.GridSpec, n int) {
	g, err := grid.New(spec.Shape, spec.Origin, spec.Loose, spec.Occupancy)
	if err != nil {
		logger.Log.Error().Err(err).Msg("gridtrace: failed to build grid")
		os.Exit(1)
	}
	mode, err := grid.ParseMode(s.Mode)
	if err != nil {
		logger.Log.Error().Err(err).Msg("gridtrace: bad mode")
		os.Exit(1)
	}
	startC, err := coord.New(floatsToInts(s.Start)...)
	if err != nil {
		logger.Log.Error().Err(err).Msg("gridtrace: bad start")
		os.Exit(1)
	}
	endC, err := coord.New(floatsToInts(s.End)...)
	if err != nil {
		logger.Log.Error().Err(err).Msg("gridtrace: bad end")
		os.Exit(1)
	}

	var eg errgroup.Group
	for i := 0; i < n; i++ {
		worker := i
		eg.Go(func() error {
			log := logger.Log.With().Str("request_id", uuid.New().String()).Int("worker", worker).Logger()
			b := planner.NewBFS(g, mode)
			path, err := b.Plan(startC, endC)
			if err != nil {
				log.Error().Err(err).Msg("gridtrace: concurrent plan failed")
				return err
			}
			log.Info().Int("path_len", len(path)).Msg("gridtrace: concurrent plan complete")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Log.Error().Err(err).Msg("gridtrace: concurrent run failed")
		os.Exit(1)
	}
}

func floatsToInts(vals []float64) []int64 {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(math.Round(v))
	}
	return out
}
