// Command solve runs the genetic search over an instance file and prints the
// best routes found.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/voltroute/voltroute/config"
	"github.com/voltroute/voltroute/fitness"
	"github.com/voltroute/voltroute/ga"
	"github.com/voltroute/voltroute/genome"
	"github.com/voltroute/voltroute/instance"
)

func main() {
	var (
		configPath   string
		instancePath string
		csvPath      string
		csvComma     string
		vehicles     int
		energy       float64
		seed         int64
		generations  int
		population   int
		quiet        bool
	)
	flag.StringVar(&configPath, "config", "", "path to config file (optional)")
	flag.StringVar(&instancePath, "instance", "", "path to .evrp instance file")
	flag.StringVar(&csvPath, "csv", "", "path to nodes CSV file (alternative to -instance)")
	flag.StringVar(&csvComma, "csv-delim", ";", "CSV field delimiter")
	flag.IntVar(&vehicles, "vehicles", 1, "vehicle count (CSV input only)")
	flag.Float64Var(&energy, "energy", 100, "battery capacity (CSV input only)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed override (0 keeps the configured seed)")
	flag.IntVar(&generations, "generations", 0, "generation count override")
	flag.IntVar(&population, "population", 0, "population size override")
	flag.BoolVar(&quiet, "quiet", false, "suppress per-generation progress")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	inst, err := loadInstance(instancePath, csvPath, csvComma, vehicles, energy, logger)
	if err != nil {
		logger.Error("failed to load instance", "error", err)
		os.Exit(1)
	}
	logger.Info("instance loaded",
		"nodes", inst.Len(),
		"depots", len(inst.Depots()),
		"customers", len(inst.Customers()),
		"stations", len(inst.Stations()),
		"vehicles", inst.Vehicles(),
	)

	opts := cfg.SolverOptions()
	if seed != 0 {
		opts.Seed = seed
	}
	if generations > 0 {
		opts.Generations = generations
	}
	if population > 0 {
		opts.PopulationSize = population
	}
	if !quiet {
		opts.Progress = func(gen int, best float64) {
			fmt.Fprintf(os.Stderr, "gen %4d/%d  best %.4f\n", gen, opts.Generations, best)
		}
	}

	solver, err := ga.New(inst, opts)
	if err != nil {
		logger.Error("failed to build solver", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := solver.Run(ctx)
	if runErr != nil {
		logger.Warn("run interrupted, reporting best so far", "error", runErr)
	}
	if res.Best == nil {
		logger.Error("no solution found")
		os.Exit(1)
	}

	printResult(inst, res, opts.Fitness)
}

// loadInstance reads either an .evrp file or a nodes CSV.
func loadInstance(evrpPath, csvPath, comma string, vehicles int, energy float64, logger *slog.Logger) (*instance.Instance, error) {
	switch {
	case evrpPath != "":
		return instance.ParseEVRPFile(evrpPath)
	case csvPath != "":
		f, err := os.Open(csvPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		delim, err := csvDelimiter(comma)
		if err != nil {
			return nil, err
		}
		nodes, rowErrs, err := instance.LoadNodesCSV(f, delim)
		if err != nil {
			return nil, err
		}
		for _, re := range rowErrs {
			logger.Warn("skipping malformed row", "line", re.Line, "reason", re.Reason)
		}
		return instance.Build(nodes, vehicles, 0, energy)
	default:
		return nil, fmt.Errorf("either -instance or -csv is required")
	}
}

// csvDelimiter decodes the -csv-delim flag into a single rune. Multi-rune
// values are rejected rather than silently truncated to their first byte.
func csvDelimiter(comma string) (rune, error) {
	if comma == "" {
		return ';', nil
	}
	r, size := utf8.DecodeRuneInString(comma)
	if r == utf8.RuneError || size != len(comma) {
		return 0, fmt.Errorf("-csv-delim must be a single character, got %q", comma)
	}

	return r, nil
}

// printResult writes the best solution to stdout.
func printResult(inst *instance.Instance, res ga.Result, p fitness.Params) {
	d := inst.DistanceMatrix()
	totalDistance, totalCharging, ok := fitness.Totals(res.Best, d, p)

	fmt.Printf("Fitness: %.4f\n", res.BestFitness)
	if ok {
		fmt.Printf("Total distance: %.2f\n", totalDistance)
		fmt.Printf("Total charging time: %.2f\n", totalCharging)
	} else {
		fmt.Println("Solution is infeasible under the energy model")
	}

	for i, route := range genome.SplitRoutes(res.Best) {
		stops := make([]string, 0, len(route))
		for _, g := range route {
			stops = append(stops, inst.Node(g.Node).ID)
		}
		fmt.Printf("Route %d: %s\n", i+1, strings.Join(stops, " -> "))
	}
}
