package ga

import (
	"math/rand"

	"github.com/voltroute/voltroute/dist"
	"github.com/voltroute/voltroute/genome"
	"github.com/voltroute/voltroute/instance"
)

// newChromosome builds one random chromosome for inst: customers are shuffled,
// split evenly across the vehicle fleet (the last vehicle absorbs the
// remainder), and each vehicle is tied to a depot round-robin. Routes are
// constructed greedily under the energy model: before committing the next
// customer the builder checks that the remaining charge covers the hop plus
// the cheapest way home, and detours to the nearest station (full recharge)
// when it does not.
//
// The construction is best-effort. When no station is reachable the customer
// is appended anyway; the repair pass and the evaluator deal with the deficit.
//
// Complexity: O(c·s) per chromosome, c customers, s stations.
func newChromosome(inst *instance.Instance, d *dist.Matrix, capacity, rate float64, rng *rand.Rand) genome.Chromosome {
	var (
		depots    = inst.Depots()
		stations  = inst.Stations()
		vehicles  = inst.Vehicles()
		customers = make([]int, len(inst.Customers()))
	)
	copy(customers, inst.Customers())
	shuffleIntsInPlace(customers, rng)

	if vehicles < 1 {
		vehicles = 1
	}

	var (
		perVehicle = len(customers) / vehicles
		routes     = make([]genome.Route, 0, vehicles)
		v          int
	)
	for v = 0; v < vehicles; v++ {
		var lo, hi int
		lo = v * perVehicle
		hi = (v + 1) * perVehicle
		if v == vehicles-1 {
			hi = len(customers)
		}

		var depot int
		depot = depots[v%len(depots)]
		routes = append(routes, buildRoute(depot, customers[lo:hi], stations, d, capacity, rate))
	}

	return genome.JoinRoutes(routes)
}

// buildRoute constructs one depot-to-depot route over assigned customers,
// inserting station detours whenever the remaining charge would not cover the
// next hop plus the cheapest continuation back to the depot.
func buildRoute(depot int, assigned, stations []int, d *dist.Matrix, capacity, rate float64) genome.Route {
	var route genome.Route
	route = append(route, genome.Gene{Node: depot, Kind: genome.KindDepot})

	var (
		battery = capacity
		cur     = depot
		i       int
	)
	for i = 0; i < len(assigned); i++ {
		var c int
		c = assigned[i]

		// Cheapest continuation after c: straight home, or via the
		// following customer when one remains.
		var reserve float64
		reserve = d.Between(c, depot) * rate
		if i < len(assigned)-1 {
			var via float64
			via = (d.Between(c, assigned[i+1]) + d.Between(assigned[i+1], depot)) * rate
			if via < reserve {
				reserve = via
			}
		}

		var hop float64
		hop = d.Between(cur, c) * rate
		if battery < hop+reserve && len(stations) > 0 {
			var s int
			s = nearestStation(cur, stations, d)
			if s >= 0 && battery >= d.Between(cur, s)*rate {
				route = append(route, genome.Gene{Node: s, Kind: genome.KindStation})
				battery = capacity
				cur = s
				hop = d.Between(cur, c) * rate
			}
		}

		route = append(route, genome.Gene{Node: c, Kind: genome.KindCustomer})
		battery -= hop
		cur = c

		// The commit may have left too little charge for the next leg.
		if i < len(assigned)-1 && len(stations) > 0 {
			var ahead float64
			ahead = (d.Between(cur, assigned[i+1]) + d.Between(assigned[i+1], depot)) * rate
			if battery < ahead {
				var s int
				s = nearestStation(cur, stations, d)
				if s >= 0 && battery >= d.Between(cur, s)*rate {
					route = append(route, genome.Gene{Node: s, Kind: genome.KindStation})
					battery = capacity
					cur = s
				}
			}
		}
	}

	if battery < d.Between(cur, depot)*rate && len(stations) > 0 {
		var s int
		s = nearestStation(cur, stations, d)
		if s >= 0 {
			route = append(route, genome.Gene{Node: s, Kind: genome.KindStation})
		}
	}

	route = append(route, genome.Gene{Node: depot, Kind: genome.KindDepot})
	return route
}

// nearestStation returns the station index closest to from, or -1 when the
// list is empty or no station is reachable in the matrix.
func nearestStation(from int, stations []int, d *dist.Matrix) int {
	var (
		best     = -1
		bestDist = dist.Unreachable()
	)
	for _, s := range stations {
		var dd float64
		dd = d.Between(from, s)
		if dd < bestDist {
			bestDist = dd
			best = s
		}
	}
	if dist.IsUnreachable(bestDist) {
		return -1
	}
	return best
}

// newPopulation builds size independent random chromosomes.
func newPopulation(inst *instance.Instance, d *dist.Matrix, capacity, rate float64, size int, rng *rand.Rand) []genome.Chromosome {
	var pop []genome.Chromosome
	pop = make([]genome.Chromosome, size)

	var i int
	for i = 0; i < size; i++ {
		pop[i] = newChromosome(inst, d, capacity, rate, rng)
	}
	return pop
}
