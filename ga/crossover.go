package ga

import (
	"math/rand"

	"github.com/voltroute/voltroute/dist"
	"github.com/voltroute/voltroute/genome"
)

// BCRC is the best-cost route crossover. A random customer of p1 is removed
// from every route of p2 and reinserted at the position with the globally
// cheapest insertion delta across all of p2's routes. The child inherits
// everything else from p2 unchanged.
//
// Conservation: the removed customer is always reinserted, even when no route
// offers a regular insertion slot (degenerate routes are then extended
// directly), so the child visits exactly the customers p2 visits.
//
// Complexity: O(len(p2)) over route scanning plus insertion.
func BCRC(p1, p2 genome.Chromosome, d *dist.Matrix, rng *rand.Rand) genome.Chromosome {
	var customers []int
	customers = p1.Customers()
	if len(customers) == 0 {
		return p2.Clone()
	}

	var customer int
	customer = customers[rng.Intn(len(customers))]

	// Remove the customer from every route of p2.
	var routes []genome.Route
	routes = genome.SplitRoutes(p2)
	for ri, r := range routes {
		var kept genome.Route
		kept = make(genome.Route, 0, len(r))
		for _, g := range r {
			if g.Kind == genome.KindCustomer && g.Node == customer {
				continue
			}
			kept = append(kept, g)
		}
		routes[ri] = kept
	}

	// Globally cheapest insertion slot across all routes.
	var (
		bestDelta = dist.Unreachable()
		bestRoute = -1
		bestPos   = -1
	)
	for ri, r := range routes {
		if len(r) < 2 {
			continue
		}
		var delta float64
		var pos int
		delta, pos = insertionCost(r, customer, d)
		if delta < bestDelta {
			bestDelta = delta
			bestRoute = ri
			bestPos = pos
		}
	}

	var gene genome.Gene
	gene = genome.Gene{Node: customer, Kind: genome.KindCustomer}

	switch {
	case bestRoute >= 0:
		routes[bestRoute] = insertGene(routes[bestRoute], bestPos, gene)
	default:
		// Every route is degenerate; extend the first non-empty one so the
		// customer is never lost.
		var placed bool
		for ri, r := range routes {
			if len(r) > 0 {
				routes[ri] = append(r, gene)
				placed = true
				break
			}
		}
		if !placed {
			routes = append(routes, genome.Route{gene})
		}
	}

	return genome.JoinRoutes(routes)
}

// insertionCost returns the cheapest detour delta for visiting customer
// between two consecutive genes of route, and the insertion position.
// Requires len(route) >= 2.
func insertionCost(route genome.Route, customer int, d *dist.Matrix) (float64, int) {
	var (
		bestDelta = dist.Unreachable()
		bestPos   = 1
		i         int
	)
	for i = 0; i < len(route)-1; i++ {
		var a, b int
		a = route[i].Node
		b = route[i+1].Node

		var delta float64
		delta = d.Between(a, customer) + d.Between(customer, b) - d.Between(a, b)
		if delta < bestDelta {
			bestDelta = delta
			bestPos = i + 1
		}
	}
	return bestDelta, bestPos
}

// insertGene places g at position pos of r, shifting the tail right.
func insertGene(r genome.Route, pos int, g genome.Gene) genome.Route {
	r = append(r, genome.Gene{})
	copy(r[pos+1:], r[pos:])
	r[pos] = g
	return r
}
