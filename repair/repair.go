package repair

import (
	"math"

	"github.com/voltroute/voltroute/dist"
	"github.com/voltroute/voltroute/fitness"
	"github.com/voltroute/voltroute/genome"
)

// Repair returns a chromosome structurally equivalent to c — same customer
// multiset, same stop order, same route grouping — with charging-station
// visits inserted wherever the forward simulation would otherwise run out of
// battery. stations lists the node indices of every charging station in the
// instance.
//
// Charging model (must mirror the fitness evaluator): before departing a
// depot or station the battery is raised to the energy required to reach the
// next stop, capped at capacity — "charge only as much as the next leg
// needs", not a top-off to full.
//
// Failure semantics: when no station is reachable with the remaining charge,
// the pending hop is forced anyway with the battery zeroed out, deliberately
// leaving the route infeasible so the evaluator penalizes it. Repair never
// returns an error and never mutates its input.
//
// Complexity: O(L·(S + K)) time where L is the chromosome length, S the
// lookahead span and K the station count.
func Repair(c genome.Chromosome, d *dist.Matrix, stations []int, batteryCapacity, consumptionRate float64) genome.Chromosome {
	routes := genome.SplitRoutes(c)
	repaired := make([]genome.Route, 0, len(routes))
	for _, route := range routes {
		repaired = append(repaired, repairRoute(route, d, stations, batteryCapacity, consumptionRate))
	}

	return genome.JoinRoutes(repaired)
}

// repairRoute runs the greedy forward walk over a single route.
//
// The walk keeps two cursors: i indexes the pending hop in the ORIGINAL
// route, cur is the actual departure point (which becomes the inserted
// station after a detour). The lookahead is always computed from the original
// route position, matching the evaluator's view of the leg.
func repairRoute(route genome.Route, d *dist.Matrix, stations []int, capacity, rate float64) genome.Route {
	if len(route) == 0 {
		return route
	}

	out := make(genome.Route, 0, len(route)+2)
	cur := route[0]
	out = append(out, cur)
	battery := capacity

	// Consecutive station insertions for one pending hop cannot exceed the
	// station count; past that the detours are cycling and the hop is a dead
	// end. Keeps the walk total even on adversarial geometry.
	detours := 0

	i := 0
	for i < len(route)-1 {
		next := route[i+1]
		need := d.Between(cur.Node, next.Node) * rate

		// Departing a stop: charge up to the requirement of the next leg.
		if cur.Kind.IsStop() {
			required, reachable := fitness.EnergyToNextStop(route, i, d, rate)
			if !reachable {
				required = capacity
			}
			battery = math.Min(capacity, math.Max(battery, required))
		}

		switch {
		case battery >= need:
			battery -= need
			out = append(out, next)
			cur = next
			i++
			detours = 0

		default:
			station := nearestReachable(cur.Node, stations, d, battery, rate)
			if station >= 0 && detours < len(stations) {
				battery -= d.Between(cur.Node, station) * rate
				cur = genome.Gene{Node: station, Kind: genome.KindStation}
				out = append(out, cur)
				detours++
				// Same pending hop, now departing from the station.

				continue
			}

			// Dead end: force the hop with an empty battery and move on;
			// the evaluator will flag the route as infeasible.
			battery = 0
			out = append(out, next)
			cur = next
			i++
			detours = 0
		}
	}

	return out
}

// nearestReachable returns the station closest to from that the remaining
// battery can still reach (battery ≥ distance·rate), or -1 when none
// qualifies. Ties break on strictly smaller distance; the departure node
// itself is skipped — charging in place was already done by the caller, so
// revisiting it cannot make progress.
func nearestReachable(from int, stations []int, d *dist.Matrix, battery, rate float64) int {
	best := -1
	bestDist := math.Inf(1)
	for _, s := range stations {
		if s == from {
			continue
		}
		ds := d.Between(from, s)
		if dist.IsUnreachable(ds) || battery < ds*rate {
			continue
		}
		if ds < bestDist {
			bestDist = ds
			best = s
		}
	}

	return best
}
