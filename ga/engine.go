package ga

import (
	"context"
	"math/rand"
	"runtime"

	"github.com/sourcegraph/conc"

	"github.com/voltroute/voltroute/dist"
	"github.com/voltroute/voltroute/fitness"
	"github.com/voltroute/voltroute/genome"
	"github.com/voltroute/voltroute/instance"
	"github.com/voltroute/voltroute/repair"
)

// Solver runs the genetic search over one problem instance. Construct with
// New; a Solver is single-use per Run and not safe for concurrent Runs.
type Solver struct {
	inst     *instance.Instance
	d        *dist.Matrix
	opts     Options
	stations []int
	rng      *rand.Rand
}

// New validates opts against inst and returns a ready Solver.
// A zero Fitness.BatteryCapacity is filled from the instance's energy
// capacity so file-borne instances work without extra configuration.
func New(inst *instance.Instance, opts Options) (*Solver, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Fitness.BatteryCapacity <= 0 {
		opts.Fitness.BatteryCapacity = inst.EnergyCapacity()
	}

	return &Solver{
		inst:     inst,
		d:        inst.DistanceMatrix(),
		opts:     opts,
		stations: inst.Stations(),
		rng:      rngFromSeed(opts.Seed),
	}, nil
}

// Run executes the configured number of generations and returns the best
// chromosome ever evaluated. Cancellation is cooperative: the context is
// checked once per generation and the best-so-far result is returned together
// with ctx.Err().
//
// Per generation: score the population in parallel, replace individuals that
// hit the infeasibility sentinel with fresh repaired chromosomes, carry the
// elites, then breed the remainder from tournament winners through crossover,
// mutation and repair.
func (s *Solver) Run(ctx context.Context) (Result, error) {
	var (
		o   = s.opts
		res = Result{BestFitness: fitness.Infeasible}
		pop []genome.Chromosome
	)
	res.History = make([]float64, 0, o.Generations)

	pop = newPopulation(s.inst, s.d, o.Fitness.BatteryCapacity, o.Fitness.ConsumptionRate, o.PopulationSize, s.rng)
	for i := range pop {
		pop[i] = s.repair(pop[i])
	}

	var gen int
	for gen = 1; gen <= o.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var scores []float64
		scores = s.evaluateAll(pop)

		// Individuals stuck at the sentinel carry no gradient; restart them.
		for i := range scores {
			if scores[i] != fitness.Infeasible {
				continue
			}
			pop[i] = s.repair(newChromosome(s.inst, s.d, o.Fitness.BatteryCapacity, o.Fitness.ConsumptionRate, s.rng))
			scores[i] = fitness.Evaluate(pop[i], s.d, o.Fitness)
			res.InfeasibleReplaced++
		}

		s.trackBest(pop, scores, &res)
		res.History = append(res.History, res.BestFitness)
		res.Generations = gen
		if o.Progress != nil {
			o.Progress(gen, res.BestFitness)
		}

		pop = s.breed(pop, scores)
	}

	// The last breeding pass produced unscored children.
	var finalScores []float64
	finalScores = s.evaluateAll(pop)
	s.trackBest(pop, finalScores, &res)

	return res, nil
}

// trackBest updates res when pop holds a strictly better individual.
func (s *Solver) trackBest(pop []genome.Chromosome, scores []float64, res *Result) {
	for i, f := range scores {
		if f < res.BestFitness {
			res.BestFitness = f
			res.Best = pop[i].Clone()
		}
	}
}

// evaluateAll scores the whole population. Evaluations are pure functions of
// the chromosome and the shared read-only matrix, so they fan out over a
// striped worker pool without locks.
func (s *Solver) evaluateAll(pop []genome.Chromosome) []float64 {
	var scores []float64
	scores = make([]float64, len(pop))

	var workers int
	workers = s.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(pop) {
		workers = len(pop)
	}

	if workers <= 1 {
		for i, c := range pop {
			scores[i] = fitness.Evaluate(c, s.d, s.opts.Fitness)
		}
		return scores
	}

	var wg conc.WaitGroup
	for w := 0; w < workers; w++ {
		var stripe int
		stripe = w
		wg.Go(func() {
			for i := stripe; i < len(pop); i += workers {
				scores[i] = fitness.Evaluate(pop[i], s.d, s.opts.Fitness)
			}
		})
	}
	wg.Wait()

	return scores
}

// breed produces the next generation: elites survive unchanged, the rest are
// children of tournament winners, crossed with probability CrossoverRate
// (otherwise cloned from the first parent), mutated with probability
// MutationRate, and always repaired.
func (s *Solver) breed(pop []genome.Chromosome, scores []float64) []genome.Chromosome {
	var (
		o    = s.opts
		next []genome.Chromosome
	)
	next = make([]genome.Chromosome, 0, o.PopulationSize)
	next = append(next, elites(pop, scores, o.EliteSize)...)

	for len(next) < o.PopulationSize {
		var p1, p2 genome.Chromosome
		p1 = pop[tournament(scores, o.TournamentSize, s.rng)]
		p2 = pop[tournament(scores, o.TournamentSize, s.rng)]

		var child genome.Chromosome
		if s.rng.Float64() < o.CrossoverRate {
			child = BCRC(p1, p2, s.d, s.rng)
		} else {
			child = p1.Clone()
		}
		if s.rng.Float64() < o.MutationRate {
			child = mutate(child, s.inst, s.d, o.Beta, s.rng)
		}

		next = append(next, s.repair(child))
	}

	return next
}

// repair applies the energy repair pass under the configured energy model.
func (s *Solver) repair(c genome.Chromosome) genome.Chromosome {
	return repair.Repair(c, s.d, s.stations, s.opts.Fitness.BatteryCapacity, s.opts.Fitness.ConsumptionRate)
}
