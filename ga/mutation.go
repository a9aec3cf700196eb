package ga

import (
	"math/rand"

	"github.com/voltroute/voltroute/dist"
	"github.com/voltroute/voltroute/genome"
	"github.com/voltroute/voltroute/instance"
)

// borderRatioThreshold is the paper threshold r: a customer is a border
// customer when (d_nearest + d_second) / Σ d_depots ≥ r.
const borderRatioThreshold = 0.3

// interDepotBias is the probability of choosing the inter-depot move when at
// least one border customer exists.
const interDepotBias = 0.7

// borderCustomer is one inter-depot move candidate: a customer geometrically
// close to more than one depot, together with the depots it could migrate to.
type borderCustomer struct {
	route      int   // index into the split routes
	pos        int   // gene position inside the route
	node       int   // customer node index
	candidates []int // target depot node indices
}

// mutate applies one mutation to c and returns the result. When border
// customers exist the inter-depot move is preferred with probability 0.7;
// otherwise an intra-route perturbation (swap, inversion or relocation of the
// interior segment) is applied. The caller gates invocation by MutationRate.
//
// All routes survive the operation: routes that are not depot-bounded are
// never mutation candidates but are carried through unchanged.
func mutate(c genome.Chromosome, inst *instance.Instance, d *dist.Matrix, beta float64, rng *rand.Rand) genome.Chromosome {
	var routes []genome.Route
	routes = genome.SplitRoutes(c.Clone())

	var borders []borderCustomer
	borders = findBorderCustomers(routes, inst, d, beta)

	if len(borders) > 0 && rng.Float64() < interDepotBias {
		return interDepotMove(routes, borders, rng)
	}
	return intraRouteMove(routes, rng)
}

// findBorderCustomers scans depot-bounded routes for customers whose two
// nearest depots are both close: the depot-distance sum ratio must reach the
// paper threshold and the gap between the two nearest depots must not exceed
// beta. Candidate target depots are all depots within beta of the nearest,
// excluding the route's own depot.
func findBorderCustomers(routes []genome.Route, inst *instance.Instance, d *dist.Matrix, beta float64) []borderCustomer {
	var depots []int
	depots = inst.Depots()
	if len(depots) < 2 {
		return nil
	}

	var borders []borderCustomer
	for ri, r := range routes {
		if !depotBounded(r) {
			continue
		}
		var own int
		own = r[0].Node

		for pos, g := range r {
			if g.Kind != genome.KindCustomer {
				continue
			}

			var nearest, second, total float64
			nearest, second, total = depotSpread(g.Node, depots, d)
			if (nearest+second)/total < borderRatioThreshold || second-nearest > beta {
				continue
			}

			var candidates []int
			for _, dep := range depots {
				if dep == own {
					continue
				}
				if d.Between(g.Node, dep)-nearest <= beta {
					candidates = append(candidates, dep)
				}
			}
			if len(candidates) == 0 {
				continue
			}

			borders = append(borders, borderCustomer{
				route:      ri,
				pos:        pos,
				node:       g.Node,
				candidates: candidates,
			})
		}
	}
	return borders
}

// depotSpread returns the customer's distance to its nearest and
// second-nearest depot plus the sum over all depots. Requires len(depots) >= 2.
func depotSpread(customer int, depots []int, d *dist.Matrix) (nearest, second, total float64) {
	nearest = dist.Unreachable()
	second = dist.Unreachable()
	for _, dep := range depots {
		var dd float64
		dd = d.Between(customer, dep)
		total += dd
		switch {
		case dd < nearest:
			second = nearest
			nearest = dd
		case dd < second:
			second = dd
		}
	}
	return nearest, second, total
}

// interDepotMove relocates one randomly chosen border customer into a route
// served by one of its candidate depots. The source route is dropped when the
// move empties it; when the target depot serves no route a fresh
// depot-customer-depot route is appended.
func interDepotMove(routes []genome.Route, borders []borderCustomer, rng *rand.Rand) genome.Chromosome {
	var sel borderCustomer
	sel = borders[rng.Intn(len(borders))]

	var target int
	target = sel.candidates[rng.Intn(len(sel.candidates))]

	// Remove the customer from its current route.
	var src genome.Route
	src = routes[sel.route]
	src = append(src[:sel.pos], src[sel.pos+1:]...)
	routes[sel.route] = src

	var gene genome.Gene
	gene = genome.Gene{Node: sel.node, Kind: genome.KindCustomer}

	var placed bool
	for ri, r := range routes {
		if depotBounded(r) && r[0].Node == target {
			var pos int
			pos = 1 + rng.Intn(len(r)-1)
			routes[ri] = insertGene(r, pos, gene)
			placed = true
			break
		}
	}
	if !placed {
		routes = append(routes, genome.Route{
			{Node: target, Kind: genome.KindDepot},
			gene,
			{Node: target, Kind: genome.KindDepot},
		})
	}

	// Drop the source route when only its depot bounds remain.
	if len(routes[sel.route]) <= 2 && depotBounded(routes[sel.route]) {
		routes = append(routes[:sel.route], routes[sel.route+1:]...)
	}

	return genome.JoinRoutes(routes)
}

// intraRouteMove perturbs the interior of one randomly chosen depot-bounded
// route: swap two positions, invert a segment, or relocate one gene.
func intraRouteMove(routes []genome.Route, rng *rand.Rand) genome.Chromosome {
	var eligible []int
	for ri, r := range routes {
		if depotBounded(r) && len(r) >= 4 {
			eligible = append(eligible, ri)
		}
	}
	if len(eligible) == 0 {
		return genome.JoinRoutes(routes)
	}

	var r genome.Route
	r = routes[eligible[rng.Intn(len(eligible))]]

	// Interior positions exclude the bounding depots.
	var lo, n int
	lo = 1
	n = len(r) - 2

	var a, b int
	a = lo + rng.Intn(n)
	b = lo + rng.Intn(n-1)
	if b >= a {
		b++
	}
	if a > b {
		a, b = b, a
	}

	switch rng.Intn(3) {
	case 0: // swap
		r[a], r[b] = r[b], r[a]
	case 1: // inversion
		for a < b {
			r[a], r[b] = r[b], r[a]
			a++
			b--
		}
	default: // relocation
		var g genome.Gene
		g = r[a]
		copy(r[a:], r[a+1:b+1])
		r[b] = g
	}

	return genome.JoinRoutes(routes)
}

// depotBounded reports whether r starts and ends with a depot gene.
func depotBounded(r genome.Route) bool {
	return len(r) >= 2 && r[0].Kind == genome.KindDepot && r[len(r)-1].Kind == genome.KindDepot
}
