// Package ga drives the genetic search over EVRP chromosomes:
// initialization → evaluation → selection → crossover → mutation → repair,
// generation after generation, tracking the best solution ever seen.
//
// The loop follows the classic elitist scheme. Each generation the whole
// population is scored in parallel (evaluations are pure functions over an
// immutable distance matrix, so they need zero synchronization); individuals
// scoring the infeasibility sentinel are replaced with fresh random
// chromosomes before selection. Parents are the elites plus tournament
// winners; offspring come from Best-Cost Route Crossover (BCRC), a
// probability-gated mutation, and an energy-feasibility repair pass.
//
// Determinism: all randomness flows from Options.Seed through a single
// deterministic stream (seed 0 selects a fixed default, never the clock), so
// a run is reproducible bit-for-bit given the same instance and options.
//
// The driver owns no global state. Cancellation is cooperative: Run checks
// its context once per generation and returns the best-so-far result with
// the context's error.
package ga
