package ga

import (
	"errors"

	"github.com/voltroute/voltroute/fitness"
	"github.com/voltroute/voltroute/genome"
)

// Sentinel errors returned by New.
var (
	// ErrNilInstance indicates a nil problem instance.
	ErrNilInstance = errors.New("ga: instance is nil")

	// ErrBadPopulation indicates a non-positive population size.
	ErrBadPopulation = errors.New("ga: population size must be positive")

	// ErrBadGenerations indicates a non-positive generation count.
	ErrBadGenerations = errors.New("ga: generation count must be positive")

	// ErrBadEliteSize indicates an elite size outside [0, population).
	ErrBadEliteSize = errors.New("ga: elite size must be in [0, population)")

	// ErrBadTournament indicates a tournament size below 1.
	ErrBadTournament = errors.New("ga: tournament size must be at least 1")

	// ErrBadRate indicates a crossover or mutation rate outside [0, 1].
	ErrBadRate = errors.New("ga: operator rate must be in [0, 1]")
)

// Options configures one genetic run. Zero value is not usable; start from
// DefaultOptions and override selectively.
type Options struct {
	// PopulationSize is the number of chromosomes per generation.
	PopulationSize int

	// Generations is the number of breeding cycles to run.
	Generations int

	// EliteSize is how many best chromosomes survive unchanged.
	EliteSize int

	// TournamentSize is the sample size of each selection tournament.
	TournamentSize int

	// CrossoverRate is the probability a child is bred by BCRC rather than
	// cloned from its first parent.
	CrossoverRate float64

	// MutationRate gates the mutation operator per child.
	MutationRate float64

	// Beta bounds the depot-distance gap (second-nearest minus nearest) under
	// which a customer counts as a border customer eligible for an
	// inter-depot move.
	Beta float64

	// Seed routes all randomness. Seed 0 selects a fixed default stream;
	// the driver never falls back to time-based seeding.
	Seed int64

	// Workers bounds the parallelism of population evaluation.
	// Zero or negative means GOMAXPROCS.
	Workers int

	// Fitness is the energy model and objective weights, shared verbatim by
	// the evaluator, the repair pass and the population initializer.
	Fitness fitness.Params

	// Progress, when non-nil, is invoked after every generation with the
	// 1-based generation number and the best fitness seen so far.
	Progress func(generation int, best float64)
}

// DefaultOptions mirrors the reference configuration.
func DefaultOptions() Options {
	return Options{
		PopulationSize: 50,
		Generations:    100,
		EliteSize:      2,
		TournamentSize: 5,
		CrossoverRate:  0.8,
		MutationRate:   0.1,
		Beta:           0.2,
		Fitness:        fitness.DefaultParams(),
	}
}

// validate checks internal consistency of o.
func (o Options) validate() error {
	if o.PopulationSize <= 0 {
		return ErrBadPopulation
	}
	if o.Generations <= 0 {
		return ErrBadGenerations
	}
	if o.EliteSize < 0 || o.EliteSize >= o.PopulationSize {
		return ErrBadEliteSize
	}
	if o.TournamentSize < 1 {
		return ErrBadTournament
	}
	if o.CrossoverRate < 0 || o.CrossoverRate > 1 || o.MutationRate < 0 || o.MutationRate > 1 {
		return ErrBadRate
	}

	return nil
}

// Result is the outcome of one genetic run.
type Result struct {
	// Best is the best chromosome ever evaluated during the run.
	Best genome.Chromosome

	// BestFitness is Best's score (fitness.Infeasible when no feasible
	// solution was ever found).
	BestFitness float64

	// History records the best-so-far fitness after each generation.
	History []float64

	// InfeasibleReplaced counts individuals that scored the infeasibility
	// sentinel and were replaced with fresh random chromosomes.
	InfeasibleReplaced int

	// Generations is how many generations actually ran (less than configured
	// when the context was canceled).
	Generations int
}
