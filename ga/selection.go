package ga

import (
	"math/rand"
	"sort"

	"github.com/voltroute/voltroute/genome"
)

// elites returns clones of the n lowest-fitness chromosomes of pop.
// The population itself is left untouched.
func elites(pop []genome.Chromosome, scores []float64, n int) []genome.Chromosome {
	if n <= 0 {
		return nil
	}

	var order []int
	order = make([]int, len(pop))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	if n > len(order) {
		n = len(order)
	}

	var out []genome.Chromosome
	out = make([]genome.Chromosome, 0, n)
	for _, i := range order[:n] {
		out = append(out, pop[i].Clone())
	}
	return out
}

// tournament samples size individuals with replacement and returns the index
// of the fittest among them. Requires a non-empty population.
func tournament(scores []float64, size int, rng *rand.Rand) int {
	if size > len(scores) {
		size = len(scores)
	}

	var (
		best      = -1
		bestScore float64
		i         int
	)
	for i = 0; i < size; i++ {
		var cand int
		cand = rng.Intn(len(scores))
		if best < 0 || scores[cand] < bestScore {
			best = cand
			bestScore = scores[cand]
		}
	}
	return best
}
